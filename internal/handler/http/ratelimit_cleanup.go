package http

import (
	"context"
	"log/slog"
	"time"
)

// DefaultCleanupInterval is how often idle rate limit buckets are swept.
const DefaultCleanupInterval = 5 * time.Minute

// RateLimitCleaner is implemented by limiters holding per-client state.
type RateLimitCleaner interface {
	Cleanup(now time.Time) int
	Len() int
}

// StartRateLimitCleanup sweeps idle buckets from limiter every interval until
// ctx is canceled. It blocks; run it in its own goroutine.
func StartRateLimitCleanup(ctx context.Context, limiter RateLimitCleaner, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultCleanupInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	slog.Info("rate limit cleanup started", slog.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			slog.Info("rate limit cleanup stopped")
			return
		case now := <-ticker.C:
			removed := limiter.Cleanup(now)
			slog.Debug("rate limit cleanup completed",
				slog.Int("keys_removed", removed),
				slog.Int("active_keys", limiter.Len()))
		}
	}
}
