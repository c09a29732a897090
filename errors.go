package client

import (
	clienterrors "github.com/newsdesk/newsdesk/client/internal/errors"
)

// StatusError is returned, alongside the Response, when the backend answers
// with a non-2xx status. Transport and timeout errors are returned as the
// HTTP stack produced them.
type StatusError = clienterrors.StatusError

// IsTimeout reports whether err came from an exceeded timeout or deadline.
func IsTimeout(err error) bool { return clienterrors.IsTimeout(err) }

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool { return clienterrors.IsStatus(err, code) }
