package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"tldr/internal/handler/http/pathutil"
	"tldr/internal/handler/http/requestid"
	"tldr/internal/handler/http/responsewriter"
)

// TraceIDHeader carries the trace ID back to the client.
const TraceIDHeader = "X-Trace-Id"

// Attribute keys set on server spans.
const (
	AttrMethod       = attribute.Key("http.request.method")
	AttrRoute        = attribute.Key("http.route")
	AttrStatusCode   = attribute.Key("http.response.status_code")
	AttrResponseSize = attribute.Key("http.response.body.size")
	AttrRequestID    = attribute.Key("http.request_id")
)

// Middleware starts a server span per request, continuing any W3C trace
// context the client sent. The span is named "METHOD route" with the route
// from pathutil.NormalizePath, and the trace ID is echoed in X-Trace-Id.
// A 5xx response sets the span status to Error.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := pathutil.NormalizePath(r.URL.Path)
		parent := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))

		ctx, span := GetTracer().Start(parent, r.Method+" "+route,
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(AttrMethod.String(r.Method), AttrRoute.String(route)),
		)
		defer span.End()

		if id := requestid.FromContext(ctx); id != "" {
			span.SetAttributes(AttrRequestID.String(id))
		}
		w.Header().Set(TraceIDHeader, span.SpanContext().TraceID().String())

		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r.WithContext(ctx))

		status := rw.StatusCode()
		span.SetAttributes(
			AttrStatusCode.Int(status),
			AttrResponseSize.Int(rw.BytesWritten()),
		)
		if status >= http.StatusInternalServerError {
			span.SetStatus(codes.Error, http.StatusText(status))
		}
	})
}
