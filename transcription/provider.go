package transcription

import (
	"context"

	"github.com/kbukum/scribe/provider"
)

// Provider is the interface that transcription backends must implement.
type Provider interface {
	provider.Provider // embeds Name() and IsAvailable()

	// Transcribe sends one utterance for recognition and returns the
	// service's raw result. Implementations make exactly one request.
	Transcribe(ctx context.Context, req Request) (*Response, error)
}
