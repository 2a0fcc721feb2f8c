// Package tracing provides OpenTelemetry tracing integration: provider setup,
// the shared tracer and an HTTP server middleware.
//
// Example usage:
//
//	shutdown := tracing.Setup("tldr", cfg.Version)
//	defer func() { _ = shutdown(context.Background()) }()
//
//	handler := tracing.Middleware(mux)
package tracing
