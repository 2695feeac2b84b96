package errors

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadyExists      = errors.New("already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOffering    = errors.New("invalid offering")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrPaymentProvider    = errors.New("payment provider unavailable")
	ErrValidation         = errors.New("validation failed")
	ErrInvalidFile        = errors.New("invalid file")
	ErrStorage            = errors.New("storage failure")
	ErrNotification       = errors.New("notification failed")
)

// ValidationError reports a missing or malformed input field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required"
	}
	return fmt.Sprintf("%s %s", e.Field, reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Required builds ValidationError for a blank required field.
func Required(field string) error {
	return &ValidationError{Field: field}
}

// InvalidFileError reports a resume that violates type or size limits.
type InvalidFileError struct {
	Reason string
}

func (e *InvalidFileError) Error() string {
	return "invalid file: " + e.Reason
}

func (e *InvalidFileError) Unwrap() error { return ErrInvalidFile }

// StorageError wraps a failed durable-storage operation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }

// Storage wraps err as StorageError unless it is nil or already a not-found miss.
func Storage(op string, err error) error {
	if err == nil || errors.Is(err, ErrNotFound) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

// NotificationError wraps a failed messaging provider call.
type NotificationError struct {
	Recipient string
	Err       error
}

func (e *NotificationError) Error() string {
	return fmt.Sprintf("notify %s: %v", e.Recipient, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

func (e *NotificationError) Is(target error) bool { return target == ErrNotification }
