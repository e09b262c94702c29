package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrTooLarge          = errors.New("payload too large")
)

// Domain error types implementing HTTPError
type (
	// UnsupportedFormatError is returned when no converter is registered for a format
	UnsupportedFormatError struct {
		Format string
	}
)

func (e *UnsupportedFormatError) Error() string {
	return "unsupported export format: " + e.Format
}

func (e *UnsupportedFormatError) StatusCode() int { return http.StatusNotFound }

// Is allows errors.Is() to match against ErrUnsupportedFormat
func (e *UnsupportedFormatError) Is(target error) bool { return target == ErrUnsupportedFormat }
