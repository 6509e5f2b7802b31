// Package tracer wires OpenTelemetry tracing into the engine.
//
// # Overview
//
// The Tracer wraps an OpenTelemetry TracerProvider with helpers for the
// operations the engine actually performs: starting spans around indexing
// and retrieval, recording errors, and attaching attributes.
//
// Export is opt-in: with EnableExport false the provider stays local, which
// is what unit tests and offline indexing runs want. With it enabled an
// OTLP HTTP exporter ships spans to the endpoint configured through the
// standard OTEL_* environment variables.
//
// # Usage
//
//	t := tracer.NewClient(tracer.NewConfig(), log)
//	ctx, span := t.StartSpan(ctx, "index-corpus")
//	defer span.End()
package tracer
