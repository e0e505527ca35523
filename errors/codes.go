package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Conversion errors. Each one is terminal for the utterance that caused it.
const (
	// ErrCodeConfiguration indicates missing or unusable engine configuration,
	// such as an absent API key.
	ErrCodeConfiguration ErrorCode = "CONFIGURATION_ERROR"
	// ErrCodeEncoding indicates the audio buffer could not be encoded.
	ErrCodeEncoding ErrorCode = "ENCODING_ERROR"
	// ErrCodeTranscriptionService indicates the transcription service
	// answered with a failure status or an unreadable body.
	ErrCodeTranscriptionService ErrorCode = "TRANSCRIPTION_SERVICE_ERROR"
	// ErrCodeNetwork indicates a transport-level failure (refused, DNS, timeout).
	ErrCodeNetwork ErrorCode = "NETWORK_ERROR"
)

// Request errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConfiguration:        false,
	ErrCodeEncoding:             false,
	ErrCodeTranscriptionService: false,
	ErrCodeNetwork:              false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
