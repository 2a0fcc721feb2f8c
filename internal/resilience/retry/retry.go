// Package retry retries summarization backend calls with exponential
// backoff. Only transient failures are retried: timeouts, refused or reset
// connections, 5xx, 408 and 429. A provider's own retry hint (Retry-After,
// a model warm-up estimate) stretches the wait up to MaxDelay.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"strconv"
	"strings"
	"syscall"
	"time"
)

// Config controls attempts and backoff.
type Config struct {
	// MaxAttempts counts the first call. 1 means no retry.
	MaxAttempts int

	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64

	// JitterFraction adds up to this fraction of the delay at random (0.0 to 1.0).
	JitterFraction float64
}

// BackendConfig returns the backoff used for backend calls.
// maxAttempts below 1 is treated as 1.
func BackendConfig(maxAttempts int) Config {
	return Config{
		MaxAttempts:    max(maxAttempts, 1),
		InitialDelay:   2 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// HTTPError is a non-success provider response.
type HTTPError struct {
	StatusCode int
	Message    string
	// RetryAfter is the provider's hint for when to try again, or zero.
	RetryAfter time.Duration
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// ParseRetryAfter reads a Retry-After header given in seconds.
// HTTP-date values and garbage yield zero.
func ParseRetryAfter(v string) time.Duration {
	secs, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil || secs <= 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}

// WithBackoff calls fn until it succeeds, fails permanently or MaxAttempts
// is reached. With a single attempt the error is returned unwrapped.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	delay := cfg.InitialDelay
	attempt := 1

	for {
		err := fn()
		switch {
		case err == nil:
			if attempt > 1 {
				slog.InfoContext(ctx, "backend call succeeded after retry", slog.Int("attempt", attempt))
			}
			return nil
		case !IsRetryable(err):
			return err
		case attempt >= cfg.MaxAttempts:
			if cfg.MaxAttempts <= 1 {
				return err
			}
			return fmt.Errorf("gave up after %d attempts: %w", attempt, err)
		}

		wait := nextWait(delay, err, cfg)
		slog.WarnContext(ctx, "backend call failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", wait),
			slog.Any("error", err))

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		attempt++
		delay = min(time.Duration(float64(delay)*cfg.Multiplier), cfg.MaxDelay)
	}
}

// nextWait is the jittered backoff delay, raised to the provider's hint and
// capped at MaxDelay.
func nextWait(delay time.Duration, err error, cfg Config) time.Duration {
	wait := addJitter(delay, cfg.JitterFraction)

	var httpErr *HTTPError
	if errors.As(err, &httpErr) && httpErr.RetryAfter > wait {
		wait = httpErr.RetryAfter
	}
	if cfg.MaxDelay > 0 && wait > cfg.MaxDelay {
		wait = cfg.MaxDelay
	}
	return wait
}

// IsRetryable reports whether err is a transient failure.
// Context cancellation and deadline errors never are.
func IsRetryable(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		switch {
		case httpErr.StatusCode >= 500 && httpErr.StatusCode < 600:
			return true
		case httpErr.StatusCode == http.StatusTooManyRequests, httpErr.StatusCode == http.StatusRequestTimeout:
			return true
		}
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	return errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH)
}

func addJitter(d time.Duration, fraction float64) time.Duration {
	if fraction <= 0 {
		return d
	}
	fraction = min(fraction, 1.0)
	// #nosec G404 -- jitter does not need cryptographic randomness
	return d + time.Duration(rand.Float64()*float64(d)*fraction)
}
