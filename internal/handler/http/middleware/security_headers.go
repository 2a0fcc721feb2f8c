package middleware

import (
	"net/http"
	"strings"
)

// Content-Security-Policy values. The API only returns JSON; the Swagger UI
// needs inline bootstrap code and its bundled assets.
const (
	APIPolicy     = "default-src 'none'; connect-src 'self'; frame-ancestors 'none'; base-uri 'self'; form-action 'self'"
	SwaggerPolicy = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; " +
		"img-src 'self' data: https:; font-src 'self' data:; connect-src 'self' blob:; " +
		"frame-ancestors 'none'; base-uri 'self'; form-action 'self'; object-src 'none'"
)

// SecurityHeaders sets Content-Security-Policy and related headers. Paths
// under swaggerPrefix get SwaggerPolicy; everything else gets APIPolicy.
// An empty swaggerPrefix applies APIPolicy everywhere.
func SecurityHeaders(swaggerPrefix string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			policy := APIPolicy
			if swaggerPrefix != "" && strings.HasPrefix(r.URL.Path, swaggerPrefix) {
				policy = SwaggerPolicy
			}

			h := w.Header()
			h.Set("Content-Security-Policy", policy)
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")

			next.ServeHTTP(w, r)
		})
	}
}
