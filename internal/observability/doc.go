// Package observability groups the service's logging, metrics and tracing.
//
// Subpackages:
//   - logging: slog setup with request_id/trace_id enrichment and key redaction
//   - metrics: Prometheus collectors for summaries, fetches, post resolution and rate limiting
//   - tracing: OpenTelemetry provider setup, HTTP middleware and the service tracer
package observability
