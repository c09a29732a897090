// Package errors holds the error types produced by the facade itself.
// Transport errors are never wrapped; only non-2xx statuses surface here.
package errors

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// StatusError reports a response whose status code is outside 2xx.
type StatusError struct {
	Operation  string
	StatusCode int
	Body       string // response body for debugging
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: HTTP %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.StatusCode, e.Body)
}

// NewStatusError creates a StatusError for the given operation.
func NewStatusError(operation string, statusCode int, body []byte) *StatusError {
	const maxBody = 512
	b := string(body)
	if len(b) > maxBody {
		b = b[:maxBody] + "..."
	}
	return &StatusError{Operation: operation, StatusCode: statusCode, Body: b}
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == code
}

// IsTimeout reports whether err came from an exceeded client timeout or
// context deadline.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}
