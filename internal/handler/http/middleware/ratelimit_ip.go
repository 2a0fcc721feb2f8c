package middleware

import (
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"tldr/internal/handler/http/respond"
	"tldr/internal/observability/metrics"
)

// IPRateLimiterConfig holds configuration for the per-IP rate limiter.
type IPRateLimiterConfig struct {
	// Rate is the sustained number of requests per second per client.
	// Zero or less disables limiting.
	Rate float64

	// Burst is the bucket size.
	// Default: 10
	Burst int

	// IdleTTL is how long an untouched client bucket is kept.
	// Default: 10 minutes
	IdleTTL time.Duration
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// IPRateLimiter is a token-bucket limiter keyed by client address.
//
// Each client gets its own rate.Limiter. Buckets that have been idle longer
// than IdleTTL are dropped by Cleanup.
type IPRateLimiter struct {
	config      IPRateLimiterConfig
	ipExtractor IPExtractor

	mu       sync.Mutex
	visitors map[string]*visitor
	now      func() time.Time
}

// NewIPRateLimiter creates an IPRateLimiter.
// A nil extractor means RemoteAddrExtractor.
func NewIPRateLimiter(config IPRateLimiterConfig, ipExtractor IPExtractor) *IPRateLimiter {
	if config.Burst <= 0 {
		config.Burst = 10
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 10 * time.Minute
	}
	if ipExtractor == nil {
		ipExtractor = RemoteAddrExtractor{}
	}

	return &IPRateLimiter{
		config:      config,
		ipExtractor: ipExtractor,
		visitors:    make(map[string]*visitor),
		now:         time.Now,
	}
}

// Enabled reports whether requests are being limited.
func (rl *IPRateLimiter) Enabled() bool {
	return rl != nil && rl.config.Rate > 0
}

// Allow takes one token from key's bucket. When the bucket is empty it
// returns false and the wait until the next token.
func (rl *IPRateLimiter) Allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	v, ok := rl.visitors[key]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rate.Limit(rl.config.Rate), rl.config.Burst)}
		rl.visitors[key] = v
	}
	v.lastSeen = now
	rl.mu.Unlock()

	reservation := v.limiter.ReserveN(now, 1)
	if !reservation.OK() {
		return false, time.Second
	}
	if delay := reservation.DelayFrom(now); delay > 0 {
		reservation.CancelAt(now)
		return false, delay
	}
	return true, 0
}

// Cleanup drops buckets idle since before now-IdleTTL and returns how many
// were removed.
func (rl *IPRateLimiter) Cleanup(now time.Time) int {
	cutoff := now.Add(-rl.config.IdleTTL)

	rl.mu.Lock()
	defer rl.mu.Unlock()

	removed := 0
	for key, v := range rl.visitors {
		if v.lastSeen.Before(cutoff) {
			delete(rl.visitors, key)
			removed++
		}
	}
	metrics.SetRateLimitActiveKeys(len(rl.visitors))
	return removed
}

// Len returns the number of tracked clients.
func (rl *IPRateLimiter) Len() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.visitors)
}

// Middleware enforces the limit. Denied requests get 429 with Retry-After.
// If the client address cannot be determined the request is let through.
func (rl *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.Enabled() {
				next.ServeHTTP(w, r)
				return
			}

			ip, err := rl.ipExtractor.ExtractIP(r)
			if err != nil {
				slog.Error("rate limiter: failed to extract IP, allowing request",
					slog.Any("error", err),
					slog.String("remote_addr", r.RemoteAddr),
					slog.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}

			allowed, retryAfter := rl.Allow(ip)
			metrics.RecordRateLimit(allowed)
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(rl.config.Burst))

			if !allowed {
				seconds := int64(math.Ceil(retryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.FormatInt(seconds, 10))

				slog.Warn("rate limit exceeded",
					slog.String("key", ip),
					slog.Int64("retry_after", seconds),
					slog.String("path", r.URL.Path),
					slog.String("method", r.Method))

				respond.Message(w, http.StatusTooManyRequests, "Too many requests, please try again later")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
