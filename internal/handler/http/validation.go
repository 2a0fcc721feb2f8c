package http

import (
	"net/http"

	"tldr/internal/handler/http/respond"
)

// MaxPathLength bounds the request path.
const MaxPathLength = 2048

// InputValidation returns middleware that rejects oversized paths with 414
// and caps the request body at maxBodyBytes. Reading past the cap fails with
// *http.MaxBytesError, which the summarize handler reports as 413.
func InputValidation(maxBodyBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(r.URL.Path) > MaxPathLength {
				respond.Message(w, http.StatusRequestURITooLong, "URI too long")
				return
			}

			if r.ContentLength > maxBodyBytes {
				respond.Message(w, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}

			r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
			next.ServeHTTP(w, r)
		})
	}
}
