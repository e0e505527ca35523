// Package errors defines the error taxonomy of the scribe engine.
//
// Every failure of a conversion is an *AppError carrying a machine-readable
// ErrorCode. Conversions are never retried, so no code is retryable; the
// Retryable flag is kept for callers that render errors to JSON.
//
//	phrase, err := client.Convert(ctx, samples, key, lang)
//	if errors.IsConfiguration(err) {
//	    // missing API key, no request was sent
//	}
//	if status, ok := errors.ServiceStatus(err); ok {
//	    // the service answered with a non-2xx status
//	}
package errors
