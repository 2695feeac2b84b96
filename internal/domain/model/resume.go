package model

import "io"

// MaxResumeSize caps uploaded resumes at 5 MiB.
const MaxResumeSize int64 = 5 << 20

// ResumeFile is an uploaded resume as declared by the client.
type ResumeFile struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}
