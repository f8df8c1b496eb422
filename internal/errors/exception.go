package errors

import (
	"errors"
	"net/http"
)

type Exception struct {
	Message    string
	StatusCode int
}

func (e *Exception) Error() string {
	return e.Message
}

func StatusCode(err error) int {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode
	}
	return http.StatusInternalServerError
}

// IsValidation reports whether err is a recoverable input error that should be
// surfaced to the caller rather than treated as a system fault.
func IsValidation(err error) bool {
	var appErr *Exception
	if errors.As(err, &appErr) {
		return appErr.StatusCode == http.StatusBadRequest
	}
	return false
}

// NewValidation builds a bad-request exception for rule failures whose message
// depends on the offending field.
func NewValidation(message string) *Exception {
	return &Exception{Message: message, StatusCode: http.StatusBadRequest}
}
