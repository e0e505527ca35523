package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/kbukum/scribe/errors"
	"github.com/kbukum/scribe/logger"
)

// MeterConfig configures the OpenTelemetry meter provider.
type MeterConfig struct {
	ServiceName    string
	ServiceVersion string
	Environment    string
	// Endpoint is the OTLP HTTP endpoint host:port (e.g., "localhost:4318").
	Endpoint string
	Insecure bool
	// Interval is the metric export interval.
	Interval time.Duration
}

// DefaultMeterConfig returns sensible defaults for a local collector.
func DefaultMeterConfig(serviceName string) MeterConfig {
	return MeterConfig{
		ServiceName:    serviceName,
		ServiceVersion: "dev",
		Environment:    "development",
		Endpoint:       "localhost:4318",
		Insecure:       true,
		Interval:       15 * time.Second,
	}
}

// InitMeter initializes the OpenTelemetry meter provider and installs it
// globally. The returned provider must be shut down on exit.
func InitMeter(ctx context.Context, config *MeterConfig) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(config.Endpoint),
	}
	if config.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(config.ServiceName, config.ServiceVersion, config.Environment)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if config.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(config.Interval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)

	otel.SetMeterProvider(mp)

	logger.Info("meter initialized", logger.Fields(
		"service", config.ServiceName,
		"endpoint", config.Endpoint,
		"interval", config.Interval.String(),
	))

	return mp, nil
}

// Meter returns a named meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

// Metric instrument names.
const (
	MetricUtterances      = "scribe.utterances"
	MetricErrors          = "scribe.errors"
	MetricConvertDuration = "scribe.convert.duration"
	MetricWords           = "scribe.words"
)

// Metrics holds the instruments recorded around each conversion.
// A nil *Metrics records nothing.
type Metrics struct {
	utterances metric.Int64Counter
	errors     metric.Int64Counter
	duration   metric.Float64Histogram
	words      metric.Int64Histogram
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	utterances, err := meter.Int64Counter(MetricUtterances,
		metric.WithDescription("Utterances submitted for transcription"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricUtterances, err)
	}

	errorTotal, err := meter.Int64Counter(MetricErrors,
		metric.WithDescription("Failed conversions by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s counter: %w", MetricErrors, err)
	}

	duration, err := meter.Float64Histogram(MetricConvertDuration,
		metric.WithDescription("Duration of encode and round trip in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricConvertDuration, err)
	}

	words, err := meter.Int64Histogram(MetricWords,
		metric.WithDescription("Words per recognized phrase"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating %s histogram: %w", MetricWords, err)
	}

	return &Metrics{
		utterances: utterances,
		errors:     errorTotal,
		duration:   duration,
		words:      words,
	}, nil
}

// RecordConversion records one convert call. err decides the outcome
// attribute; failures are also counted by their error code.
func (m *Metrics) RecordConversion(ctx context.Context, duration time.Duration, words int, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
		code := string(errors.FromError(err).Code)
		m.errors.Add(ctx, 1, metric.WithAttributes(attribute.String("code", code)))
	} else if words == 0 {
		outcome = "empty"
	}
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.utterances.Add(ctx, 1, attrs)
	m.duration.Record(ctx, duration.Seconds(), attrs)
	if err == nil {
		m.words.Record(ctx, int64(words))
	}
}
