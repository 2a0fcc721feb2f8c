package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"tldr/internal/config"
	"tldr/internal/handler/http/requestid"
	"tldr/internal/handler/http/respond"
)

// NewLogger creates the service logger on stdout from the log configuration.
func NewLogger(cfg config.LogConfig) *slog.Logger {
	return New(os.Stdout, cfg.Level, cfg.Format)
}

// New creates a structured logger writing to w.
// format is "json" (default) or "text"; level is debug, info, warn or error
// (default info). Source locations are added at debug level.
//
// Every record gets request_id and trace_id from its context when present,
// and error attributes are masked with respond.SanitizeString.
func New(w io.Writer, level, format string) *slog.Logger {
	logLevel := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       logLevel,
		AddSource:   logLevel <= slog.LevelDebug,
		ReplaceAttr: redactErrors,
	}

	var handler slog.Handler
	if strings.EqualFold(format, "text") {
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	return slog.New(&contextHandler{Handler: handler})
}

// ParseLevel maps a level name to a slog.Level. Unknown names map to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	}
	return slog.LevelInfo
}

// redactErrors masks credentials in attributes that carry errors.
func redactErrors(_ []string, a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindAny {
		if err, ok := a.Value.Any().(error); ok {
			return slog.String(a.Key, respond.SanitizeError(err))
		}
	}
	if a.Key == "error" && a.Value.Kind() == slog.KindString {
		return slog.String(a.Key, respond.SanitizeString(a.Value.String()))
	}
	return a
}

// contextHandler adds request and trace identifiers from the record context.
type contextHandler struct {
	slog.Handler
}

func (h *contextHandler) Handle(ctx context.Context, r slog.Record) error {
	if id := requestid.FromContext(ctx); id != "" {
		r.AddAttrs(slog.String("request_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		r.AddAttrs(slog.String("trace_id", sc.TraceID().String()))
	}
	return h.Handler.Handle(ctx, r)
}

func (h *contextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithAttrs(attrs)}
}

func (h *contextHandler) WithGroup(name string) slog.Handler {
	return &contextHandler{Handler: h.Handler.WithGroup(name)}
}

// WithRequestID returns a new logger that includes the request ID from the context.
// Loggers built by New already do this per record; this helper serves
// loggers created elsewhere.
func WithRequestID(ctx context.Context, logger *slog.Logger) *slog.Logger {
	reqID := requestid.FromContext(ctx)
	if reqID == "" {
		return logger
	}
	return logger.With("request_id", reqID)
}
