package usecase

import (
	"fmt"
	"mime"
	"net/mail"
	"path/filepath"
	"strings"

	domainErrors "github.com/polkiloo/interviewprep/internal/domain/errors"
	"github.com/polkiloo/interviewprep/internal/domain/model"
)

// resumeTypes maps accepted MIME types to stored file extensions.
var resumeTypes = map[string]string{
	"application/pdf":    "pdf",
	"application/msword": "doc",
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": "docx",
}

var resumeExtensions = map[string]string{
	".pdf":  "application/pdf",
	".doc":  "application/msword",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// ValidateEmail reports whether s is a bare email address.
func ValidateEmail(field, s string) error {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return &domainErrors.ValidationError{Field: field, Reason: "must be a valid email address"}
	}
	return nil
}

type namedValue struct {
	field string
	value string
}

// firstBlank returns ValidationError for the first blank value.
func firstBlank(values ...namedValue) error {
	for _, v := range values {
		if strings.TrimSpace(v.value) == "" {
			return domainErrors.Required(v.field)
		}
	}
	return nil
}

// ValidateResume checks declared size and type and returns the normalised
// content type and extension used for storage.
func ValidateResume(file *model.ResumeFile) (contentType, ext string, err error) {
	if file.Size <= 0 {
		return "", "", &domainErrors.InvalidFileError{Reason: "resume is empty"}
	}
	if file.Size > model.MaxResumeSize {
		return "", "", &domainErrors.InvalidFileError{Reason: fmt.Sprintf("resume exceeds %d MiB", model.MaxResumeSize>>20)}
	}

	mediaType := ""
	if file.ContentType != "" {
		if parsed, _, perr := mime.ParseMediaType(file.ContentType); perr == nil {
			mediaType = strings.ToLower(parsed)
		}
	}
	if ext, ok := resumeTypes[mediaType]; ok {
		return mediaType, ext, nil
	}

	generic := mediaType == "" || mediaType == "application/octet-stream"
	if generic {
		if ct, ok := resumeExtensions[strings.ToLower(filepath.Ext(file.Filename))]; ok {
			return ct, resumeTypes[ct], nil
		}
	}
	return "", "", &domainErrors.InvalidFileError{Reason: "resume must be a PDF, DOC or DOCX file"}
}
