package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// CORSConfig holds the cross-origin policy for the browser front end.
type CORSConfig struct {
	// AllowedOrigins is a whitelist of exact origins, e.g. "https://tldr.example.com".
	// Empty disables CORS handling.
	AllowedOrigins []string

	// AllowedMethods defaults to GET, POST, OPTIONS.
	AllowedMethods []string

	// AllowedHeaders defaults to Content-Type, X-Request-ID.
	AllowedHeaders []string

	// MaxAge is the preflight cache duration in seconds.
	// Default: 86400
	MaxAge int
}

// ValidateOrigins checks that each origin is a bare http(s) scheme and host.
func ValidateOrigins(origins []string) error {
	for _, origin := range origins {
		u, err := url.Parse(origin)
		if err != nil {
			return fmt.Errorf("invalid origin %q: %w", origin, err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("origin must use http or https scheme: %s", origin)
		}
		if u.Host == "" {
			return fmt.Errorf("origin must include a host: %s", origin)
		}
		if u.Path != "" || u.RawQuery != "" || u.Fragment != "" {
			return fmt.Errorf("origin must not include path, query or fragment: %s", origin)
		}
	}
	return nil
}

// CORS answers preflight requests and sets Access-Control-* headers for
// whitelisted origins. Requests from other origins pass through without
// CORS headers, so the browser blocks the response.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = []string{http.MethodGet, http.MethodPost, http.MethodOptions}
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = []string{"Content-Type", "X-Request-ID"}
	}
	if config.MaxAge <= 0 {
		config.MaxAge = 86400
	}

	allowed := make(map[string]struct{}, len(config.AllowedOrigins))
	for _, origin := range config.AllowedOrigins {
		allowed[strings.TrimSpace(origin)] = struct{}{}
	}
	methods := strings.Join(config.AllowedMethods, ", ")
	headers := strings.Join(config.AllowedHeaders, ", ")

	return func(next http.Handler) http.Handler {
		if len(allowed) == 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := allowed[origin]; !ok {
				slog.Warn("CORS: origin not allowed",
					slog.String("origin", origin),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Add("Vary", "Origin")

			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.Header().Set("Access-Control-Allow-Methods", methods)
				w.Header().Set("Access-Control-Allow-Headers", headers)
				w.Header().Set("Access-Control-Max-Age", strconv.Itoa(config.MaxAge))
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
