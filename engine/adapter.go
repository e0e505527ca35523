package engine

import (
	"context"
	"sync"

	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/transcription"
)

// Settings are the host-owned values read on every utterance.
type Settings struct {
	APIKey   string
	Language string
}

// SettingsSource provides the current host settings.
type SettingsSource interface {
	Settings() Settings
}

// StaticSettings returns the same settings every time.
type StaticSettings Settings

// Settings implements SettingsSource.
func (s StaticSettings) Settings() Settings { return Settings(s) }

// PhraseConverter is the part of the Scribe client the engine uses.
type PhraseConverter interface {
	Convert(ctx context.Context, samples []float64, apiKey, languageHint string) (transcription.Phrase, error)
}

// ClientConverter binds a client to host settings, reading them afresh
// for each utterance.
type ClientConverter struct {
	Client   PhraseConverter
	Settings SettingsSource
}

// Convert implements Converter.
func (c ClientConverter) Convert(ctx context.Context, samples []float64) (transcription.Phrase, error) {
	s := c.Settings.Settings()
	return c.Client.Convert(ctx, samples, s.APIKey, s.Language)
}

// FuncDispatcher adapts a function to Dispatcher.
type FuncDispatcher func(ctx context.Context, ev Event)

// Dispatch implements Dispatcher.
func (f FuncDispatcher) Dispatch(ctx context.Context, ev Event) { f(ctx, ev) }

// ChannelDispatcher forwards events to a channel. Dispatch blocks until the
// event is received or ctx is done, in which case the event is dropped.
type ChannelDispatcher struct {
	C chan Event
}

// NewChannelDispatcher creates a dispatcher with the given buffer size.
func NewChannelDispatcher(buffer int) *ChannelDispatcher {
	return &ChannelDispatcher{C: make(chan Event, buffer)}
}

// Dispatch implements Dispatcher.
func (d *ChannelDispatcher) Dispatch(ctx context.Context, ev Event) {
	select {
	case d.C <- ev:
	case <-ctx.Done():
	}
}

// LogDispatcher logs every phrase at info level. The bridge server uses it
// since phrases are also returned to the caller directly.
type LogDispatcher struct {
	Log *logger.Logger
}

// Dispatch implements Dispatcher.
func (d LogDispatcher) Dispatch(_ context.Context, ev Event) {
	if d.Log == nil {
		return
	}
	d.Log.Info("phrase", logger.Fields(
		"type", ev.Type,
		"phrase", []string(ev.Phrase),
		logger.FieldTimestamp, ev.Timestamp,
	))
}

// Recorder keeps dispatched events. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

// Dispatch implements Dispatcher.
func (r *Recorder) Dispatch(_ context.Context, ev Event) {
	r.mu.Lock()
	r.events = append(r.events, ev)
	r.mu.Unlock()
}

// Events returns a copy of the dispatched events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
