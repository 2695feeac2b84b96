package test

import (
	"math/rand/v2"
	"strings"
)

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomASCIIString returns a pseudo-random alphanumeric string of length in [minLen, maxLen].
func RandomASCIIString(minLen, maxLen int) string {
	minLen = max(minLen, 1)
	maxLen = max(maxLen, minLen)

	buf := make([]byte, minLen+rand.IntN(maxLen-minLen+1))
	for i := range buf {
		buf[i] = asciiLetters[rand.IntN(len(asciiLetters))]
	}
	return string(buf)
}

// RandomEmail returns a unique-looking lowercase address under example.com.
func RandomEmail() string {
	return strings.ToLower(RandomASCIIString(6, 12)) + "@example.com"
}

// RandomResume returns a fake PDF body of exactly size bytes.
func RandomResume(size int) []byte {
	const header = "%PDF-1.7\n"
	if size <= len(header) {
		return []byte(header[:max(size, 0)])
	}
	return []byte(header + RandomASCIIString(size-len(header), size-len(header)))
}
