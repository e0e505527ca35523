package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies a failed request.
type ErrorCode int

const (
	// ErrCodeTimeout means the deadline passed before a status arrived.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection means the request never got an answer (refused,
	// DNS, reset, caller cancellation).
	ErrCodeConnection
	// ErrCodeRequest means the request could not be built.
	ErrCodeRequest
	// ErrCodeStatus means the service answered with a non-2xx status.
	ErrCodeStatus
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeRequest:
		return "request"
	case ErrCodeStatus:
		return "status"
	default:
		return "unknown"
	}
}

// Error is a classified request failure.
type Error struct {
	// StatusCode is the HTTP status, 0 when no response was received.
	StatusCode int
	Code       ErrorCode
	Message    string
	// Body is the response body of a status error.
	Body []byte
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewTimeoutError creates a timeout error.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Err: err}
}

// NewConnectionError creates a connection error.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
}

func newRequestError(op string, err error) *Error {
	return &Error{Code: ErrCodeRequest, Message: fmt.Sprintf("%s: %v", op, err), Err: err}
}

// ClassifyStatusCode returns nil for a 2xx status and a status error
// carrying body otherwise. The service's own error format is left to the
// caller.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	msg := http.StatusText(statusCode)
	if msg == "" {
		msg = fmt.Sprintf("HTTP %d", statusCode)
	}
	return &Error{StatusCode: statusCode, Code: ErrCodeStatus, Message: msg, Body: body}
}

// AsError returns err as an *Error if it is one.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsTimeout reports whether err is a timeout.
func IsTimeout(err error) bool {
	e, ok := AsError(err)
	return ok && e.Code == ErrCodeTimeout
}

// IsTransport reports whether the request failed before any HTTP status
// was received.
func IsTransport(err error) bool {
	e, ok := AsError(err)
	return ok && e.StatusCode == 0 && (e.Code == ErrCodeTimeout || e.Code == ErrCodeConnection)
}
