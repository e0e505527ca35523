package scribe

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/scribe/audio"
	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/httpclient"
	"github.com/kbukum/scribe/logger"
	"github.com/kbukum/scribe/notify"
	"github.com/kbukum/scribe/observability"
	"github.com/kbukum/scribe/provider"
	"github.com/kbukum/scribe/transcription"
)

// MissingKeyMessage is reported to the user and returned when no API key
// is available for a conversion.
const MissingKeyMessage = "no elevenlabs api key!"

// Client talks to the ElevenLabs speech-to-text endpoint. It holds only
// immutable configuration and a shared HTTP client, so one Client may
// serve concurrent utterances.
type Client struct {
	cfg      Config
	http     *httpclient.Client
	notifier notify.Notifier
	log      *logger.Logger
	metrics  *observability.Metrics
}

var (
	_ transcription.Provider = (*Client)(nil)
	_ provider.HealthChecker = (*Client)(nil)
)

type options struct {
	notifier  notify.Notifier
	log       *logger.Logger
	metrics   *observability.Metrics
	transport http.RoundTripper
}

// Option configures a Client.
type Option func(*options)

// WithNotifier sets the side channel used to tell the user about a
// missing API key.
func WithNotifier(n notify.Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithMetrics records conversion metrics.
func WithMetrics(m *observability.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// New creates a Scribe client. cfg is defaulted and validated.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := options{notifier: notify.Nop{}, log: logger.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notifier == nil {
		o.notifier = notify.Nop{}
	}
	if o.log == nil {
		o.log = logger.Nop()
	}

	hc, err := httpclient.New(httpclient.Config{
		BaseURL:   cfg.Endpoint,
		Timeout:   cfg.Timeout,
		Transport: o.transport,
		Headers:   map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		return nil, errors.Configuration("scribe http client: " + err.Error()).WithCause(err)
	}

	return &Client{
		cfg:      cfg,
		http:     hc,
		notifier: o.notifier,
		log:      o.log.WithComponent(ProviderName),
		metrics:  o.metrics,
	}, nil
}

// Name implements provider.Provider.
func (c *Client) Name() string { return ProviderName }

// IsAvailable implements provider.Provider.
func (c *Client) IsAvailable(context.Context) bool { return c.cfg.Endpoint != "" }

// Health reports degraded when no default key is configured, since only
// callers that bring their own key can convert.
func (c *Client) Health(context.Context) provider.HealthStatus {
	if c.cfg.APIKey == "" {
		return provider.NewHealthStatus(provider.StatusDegraded, "no default api key configured")
	}
	return provider.NewHealthStatus(provider.StatusHealthy, "")
}

// Config returns the effective configuration.
func (c *Client) Config() Config { return c.cfg }

// Convert turns one utterance into a normalized phrase.
//
// An empty apiKey fails with a configuration error before any request and
// is also shown to the user through the notifier. Otherwise the samples are
// encoded as FLAC and posted once; the result passes the hallucination
// filter and is normalized. An empty phrase means nothing was recognized.
func (c *Client) Convert(ctx context.Context, samples []float64, apiKey, languageHint string) (transcription.Phrase, error) {
	start := time.Now()
	if apiKey == "" {
		c.notifier.Notify(MissingKeyMessage)
		err := errors.Configuration(MissingKeyMessage)
		c.metrics.RecordConversion(ctx, time.Since(start), 0, err)
		return nil, err
	}

	resp, err := c.transcribe(ctx, apiKey, transcription.Request{Samples: samples, Language: languageHint})
	if err != nil {
		c.metrics.RecordConversion(ctx, time.Since(start), 0, err)
		return nil, err
	}

	phrase := transcription.NormalizeResponse(resp, transcription.DefaultLanguage)
	c.metrics.RecordConversion(ctx, time.Since(start), len(phrase), nil)
	return phrase, nil
}

// Transcribe implements transcription.Provider using the configured key.
// It returns the raw service result without filtering or normalization.
func (c *Client) Transcribe(ctx context.Context, req transcription.Request) (*transcription.Response, error) {
	start := time.Now()
	if c.cfg.APIKey == "" {
		err := errors.Configuration(MissingKeyMessage)
		c.metrics.RecordConversion(ctx, time.Since(start), 0, err)
		return nil, err
	}
	resp, err := c.transcribe(ctx, c.cfg.APIKey, req)
	words := 0
	if err == nil {
		words = len(transcription.NormalizeText(resp.Text))
	}
	c.metrics.RecordConversion(ctx, time.Since(start), words, err)
	return resp, err
}

// transcribe encodes, posts and decodes exactly once.
func (c *Client) transcribe(ctx context.Context, apiKey string, req transcription.Request) (*transcription.Response, error) {
	ctx, span := observability.StartSpan(ctx, observability.SpanConvert)
	defer span.End()

	utteranceID := uuid.NewString()
	log := c.log.WithFields(logger.Fields(logger.FieldUtteranceID, utteranceID))

	sampleRate := req.SampleRate
	if sampleRate == 0 {
		sampleRate = c.cfg.SampleRate
	}
	model := req.Model
	if model == "" {
		model = c.cfg.Model
	}
	language := req.Language
	if language == "" {
		language = c.cfg.Language
	}

	observability.SetSpanAttribute(ctx, observability.AttrUtteranceID, utteranceID)
	observability.SetSpanAttribute(ctx, observability.AttrAudioSamples, len(req.Samples))
	observability.SetSpanAttribute(ctx, observability.AttrLanguage, language)

	flacData, err := audio.EncodeFLAC(req.Samples, sampleRate)
	if err != nil {
		return nil, c.fail(ctx, span, log, err)
	}
	observability.SetSpanAttribute(ctx, observability.AttrAudioBytes, len(flacData))

	start := time.Now()
	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   speechToTextPath,
		Body:   c.buildForm(flacData, model, language),
		Auth:   httpclient.APIKeyAuthHeader(apiKey, apiKeyHeader),
	})
	elapsed := time.Since(start)

	if resp != nil {
		observability.SetSpanAttribute(ctx, observability.AttrHTTPStatus, resp.StatusCode)
		log.Debug("scribe response", logger.MergeWithDuration(logger.Fields(
			logger.FieldSampleCount, len(req.Samples),
			logger.FieldStatus, resp.StatusCode,
			"body", string(resp.Body),
		), elapsed))
	}

	if err != nil {
		switch {
		case resp != nil:
			return nil, c.fail(ctx, span, log, serviceError(resp.StatusCode, resp.Body))
		case httpclient.IsTransport(err):
			netErr := errors.Network(err)
			if httpclient.IsTimeout(err) {
				netErr.WithDetail("timeout", true)
			}
			return nil, c.fail(ctx, span, log, netErr)
		default:
			return nil, c.fail(ctx, span, log, errors.Internal(err))
		}
	}

	result, err := decodeResponse(resp.StatusCode, resp.Body)
	if err != nil {
		return nil, c.fail(ctx, span, log, err)
	}

	observability.SetSpanAttribute(ctx, observability.AttrLanguageResult, result.LanguageCode)
	log.Debug("utterance transcribed", logger.Fields(
		logger.FieldLanguage, result.LanguageCode,
		"language_probability", result.LanguageProbability,
		"chars", len(result.Text),
	))
	return result, nil
}

func (c *Client) fail(ctx context.Context, span trace.Span, log *logger.Logger, err error) error {
	appErr := errors.FromError(err)
	span.RecordError(err)
	observability.SetSpanAttribute(ctx, observability.AttrErrorCode, string(appErr.Code))
	fields := logger.Fields(logger.FieldErrorCode, string(appErr.Code))
	if status, ok := errors.ServiceStatus(err); ok {
		fields[logger.FieldStatus] = status
	}
	log.WithError(err).Debug("scribe request failed", fields)
	return err
}
