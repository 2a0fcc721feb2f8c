// Package respond writes JSON responses. A failure carries the message shown
// to the client; its cause only reaches the log, with credentials masked.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
)

// InternalMessage is the body of any failure that was not mapped to a
// client-facing message.
const InternalMessage = "internal server error"

// ErrorBody is the JSON shape of every error response.
type ErrorBody struct {
	Error string `json:"error"`
}

// JSON writes v as the response body with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are gone; all that is left is the log.
		slog.Error("failed to encode JSON response",
			slog.Int("status_code", code),
			slog.Any("error", err))
	}
}

// Message writes {"error": msg}.
func Message(w http.ResponseWriter, code int, msg string) {
	JSON(w, code, ErrorBody{Error: msg})
}

// Failure pairs an HTTP status and a client-facing message with the error
// that caused it.
type Failure struct {
	Status  int
	Message string
	Cause   error
}

// Fail builds a Failure. cause may be nil.
func Fail(status int, msg string, cause error) *Failure {
	return &Failure{Status: status, Message: msg, Cause: cause}
}

func (f *Failure) Error() string {
	if f.Cause == nil {
		return f.Message
	}
	return f.Message + ": " + f.Cause.Error()
}

func (f *Failure) Unwrap() error { return f.Cause }

// Err reports err to the client. A *Failure anywhere in the chain supplies
// the status and message; any other error becomes a 500 with
// InternalMessage. The cause is logged at warn for 4xx and error for 5xx.
func Err(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	var f *Failure
	if !errors.As(err, &f) {
		f = Fail(http.StatusInternalServerError, InternalMessage, err)
	}

	level := slog.LevelError
	if f.Status < http.StatusInternalServerError {
		level = slog.LevelWarn
	}
	attrs := []slog.Attr{
		slog.Int("status", f.Status),
		slog.String("message", f.Message),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	}
	if f.Cause != nil {
		attrs = append(attrs, slog.String("error", SanitizeError(f.Cause)))
	}
	slog.Default().LogAttrs(r.Context(), level, "request failed", attrs...)

	Message(w, f.Status, f.Message)
}
