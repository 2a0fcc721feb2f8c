package tracing

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// tracerName identifies spans created by this service.
const tracerName = "tldr"

// GetTracer returns the tracer for creating spans. It is looked up from the
// current global provider on every call, so spans follow whatever provider
// Setup (or a test) installed last.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
