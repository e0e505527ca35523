package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status the local bridge answers with for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// Configuration creates an error for missing or invalid engine configuration.
func Configuration(message string) *AppError {
	return New(ErrCodeConfiguration, message, http.StatusInternalServerError)
}

// Encoding creates an error for audio that could not be encoded.
func Encoding(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeEncoding, Message: fmt.Sprintf("audio encoding failed: %s", reason),
		HTTPStatus: http.StatusBadRequest, Cause: cause,
	}
}

// TranscriptionService creates an error for a failed answer from the
// transcription service. statusCode is the status the service returned.
func TranscriptionService(statusCode int, message string) *AppError {
	return &AppError{
		Code: ErrCodeTranscriptionService, Message: message,
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"status_code": statusCode},
	}
}

// Network creates an error for a transport-level failure.
func Network(cause error) *AppError {
	msg := "transcription service unreachable"
	if cause != nil {
		msg = fmt.Sprintf("%s: %v", msg, cause)
	}
	return &AppError{
		Code: ErrCodeNetwork, Message: msg,
		HTTPStatus: http.StatusServiceUnavailable, Cause: cause,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message, http.StatusBadRequest)
}

// Internal creates a new AppError for an unexpected failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Message: "An unexpected error occurred.",
		HTTPStatus: http.StatusInternalServerError, Cause: cause,
	}
}

// --- Classification ---

func hasCode(err error, code ErrorCode) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// IsConfiguration reports whether err is a configuration error.
func IsConfiguration(err error) bool { return hasCode(err, ErrCodeConfiguration) }

// IsEncoding reports whether err is an encoding error.
func IsEncoding(err error) bool { return hasCode(err, ErrCodeEncoding) }

// IsTranscriptionService reports whether err is a transcription service error.
func IsTranscriptionService(err error) bool { return hasCode(err, ErrCodeTranscriptionService) }

// IsNetwork reports whether err is a network error.
func IsNetwork(err error) bool { return hasCode(err, ErrCodeNetwork) }

// ServiceStatus returns the HTTP status returned by the transcription
// service when err is a transcription service error that carries one.
func ServiceStatus(err error) (int, bool) {
	var appErr *AppError
	if !stderrors.As(err, &appErr) || appErr.Code != ErrCodeTranscriptionService {
		return 0, false
	}
	status, ok := appErr.Details["status_code"].(int)
	return status, ok
}
