package engine

import (
	"context"
	"time"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/transcription"
)

const (
	// Name is the engine identifier the host selects.
	Name = "scribe"
	// EventPhrase is the only event type the engine dispatches.
	EventPhrase = "phrase"
)

// Converter turns one utterance into a phrase.
type Converter interface {
	Convert(ctx context.Context, samples []float64) (transcription.Phrase, error)
}

// ConverterFunc adapts a function to Converter.
type ConverterFunc func(ctx context.Context, samples []float64) (transcription.Phrase, error)

// Convert implements Converter.
func (f ConverterFunc) Convert(ctx context.Context, samples []float64) (transcription.Phrase, error) {
	return f(ctx, samples)
}

// Event is what the engine hands to the host's dispatch pipeline.
type Event struct {
	Type      string               `json:"type"`
	Phrase    transcription.Phrase `json:"phrase"`
	Samples   []float64            `json:"-"`
	Timestamp float64              `json:"ts"`
}

// Dispatcher receives recognized phrases.
type Dispatcher interface {
	Dispatch(ctx context.Context, ev Event)
}

// Status is the engine state reported to the host.
type Status struct {
	Ready bool `json:"ready"`
}

// Engine is the host-facing speech engine.
type Engine struct {
	converter  Converter
	dispatcher Dispatcher
	notifier   notify.Notifier
	log        *logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithNotifier sets where conversion failures are shown to the user.
func WithNotifier(n notify.Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// New creates an engine dispatching to d.
func New(c Converter, d Dispatcher, opts ...Option) *Engine {
	e := &Engine{
		converter:  c,
		dispatcher: d,
		notifier:   notify.Nop{},
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.log = e.log.WithComponent("engine")
	return e
}

// Name returns the engine identifier.
func (e *Engine) Name() string { return Name }

// NeedVAD reports that the host must segment audio into utterances.
func (e *Engine) NeedVAD() bool { return true }

// OnAudioFrame handles one utterance. ts is the host timestamp; pad is
// accepted for interface compatibility and ignored.
//
// A failed conversion is logged, shown to the user and returned; the
// utterance is dropped. An empty phrase dispatches nothing.
func (e *Engine) OnAudioFrame(ctx context.Context, samples []float64, ts float64, pad bool) (transcription.Phrase, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanUtterance)
	defer span.End()

	start := time.Now()
	phrase, err := e.converter.Convert(ctx, samples)
	fields := logger.MergeWithDuration(logger.Fields(
		logger.FieldSampleCount, len(samples),
		logger.FieldTimestamp, ts,
	), time.Since(start))

	if err != nil {
		span.RecordError(err)
		appErr := errors.FromError(err)
		fields[logger.FieldErrorCode] = string(appErr.Code)
		e.log.WithError(err).Error("utterance dropped", fields)
		// A missing key has already been shown by the client.
		if !errors.IsConfiguration(err) {
			e.notifier.Notify(appErr.Message)
		}
		return nil, err
	}

	fields[logger.FieldWords] = len(phrase)
	if phrase.Empty() {
		e.log.Debug("no phrase recognized", fields)
		return phrase, nil
	}
	e.log.Debug("phrase recognized", fields)
	e.dispatcher.Dispatch(ctx, Event{
		Type:      EventPhrase,
		Phrase:    phrase,
		Samples:   samples,
		Timestamp: ts,
	})
	return phrase, nil
}

// Mimic dispatches phrase as if it had been spoken.
func (e *Engine) Mimic(ctx context.Context, phrase transcription.Phrase) {
	e.dispatcher.Dispatch(ctx, Event{Type: EventPhrase, Phrase: phrase})
}

// Status reports the engine as always ready; there is no local model to load.
func (e *Engine) Status() Status { return Status{Ready: true} }

// Enable is a no-op.
func (e *Engine) Enable() {}

// Disable is a no-op.
func (e *Engine) Disable() {}

// Close is a no-op; the engine holds no resources.
func (e *Engine) Close() error { return nil }

// SetMicrophone is a no-op; capture belongs to the host.
func (e *Engine) SetMicrophone(device string) {}

// SyncGrammar is a no-op; recognition is open-vocabulary.
func (e *Engine) SyncGrammar(grammar any) {}

// UnloadGrammar is a no-op.
func (e *Engine) UnloadGrammar(grammar any) {}

// SetVocab is a no-op.
func (e *Engine) SetVocab(words []string) {}
