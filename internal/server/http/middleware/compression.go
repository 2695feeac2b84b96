package middleware

import (
	"compress/gzip"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type gzipBody struct {
	*gzip.Reader
	raw interface{ Close() error }
}

func (b gzipBody) Close() error {
	err := b.Reader.Close()
	if rawErr := b.raw.Close(); err == nil {
		err = rawErr
	}
	return err
}

// DecompressRequest inflates gzip encoded request bodies. The inflated body is
// capped at maxBytes so a small compressed payload cannot expand without bound;
// a non-positive maxBytes disables the cap.
func DecompressRequest(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !strings.Contains(strings.ToLower(c.GetHeader("Content-Encoding")), "gzip") {
			c.Next()
			return
		}

		reader, err := gzip.NewReader(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "request decoding failed: malformed gzip body"})
			return
		}

		body := gzipBody{Reader: reader, raw: c.Request.Body}
		c.Request.Body = body
		if maxBytes > 0 {
			c.Request.Body = http.MaxBytesReader(c.Writer, body, maxBytes)
		}
		c.Request.Header.Del("Content-Encoding")
		c.Request.ContentLength = -1
		c.Next()
	}
}
