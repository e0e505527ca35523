// Package observability provides OpenTelemetry tracing and metrics for the
// transcription path, plus a small health model for the bridge server.
//
// Setup wires both providers from Config and returns a single shutdown
// function:
//
//	shutdown, err := observability.Setup(ctx, cfg, "scribe", version)
//	defer shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanConvert)
//	defer span.End()
//
// Conversion metrics:
//
//	metrics, err := observability.NewMetrics(observability.Meter("scribe"))
//	metrics.RecordConversion(ctx, duration, len(words), err)
package observability
