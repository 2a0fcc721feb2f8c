// Package circuitbreaker stops calling a summarization provider that keeps
// failing, using github.com/sony/gobreaker.
package circuitbreaker

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker"

	"tldr/internal/resilience/retry"
)

// Config holds the breaker settings.
type Config struct {
	// Name appears in state change logs.
	Name string

	// MaxRequests is how many probes pass while half-open.
	MaxRequests uint32

	// Interval clears the closed-state counts.
	Interval time.Duration

	// Timeout is how long the breaker stays open before probing.
	Timeout time.Duration

	// FailureThreshold is the failure ratio that trips the breaker, e.g. 0.6.
	FailureThreshold float64

	// MinRequests is the number of calls before the ratio is considered.
	MinRequests uint32

	// CountsAsFailure decides which errors count against the provider.
	// Nil counts every error.
	CountsAsFailure func(error) bool
}

// SummarizerConfig returns the breaker settings for a backend provider.
// Only provider faults trip it; see ProviderFault.
func SummarizerConfig(provider string) Config {
	return Config{
		Name:             "summarizer-" + provider,
		MaxRequests:      3,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.6,
		MinRequests:      5,
		CountsAsFailure:  ProviderFault,
	}
}

// ProviderFault reports whether err says the provider itself is in trouble:
// a transient failure (5xx, 429, network) or the call running out of time.
// Rejections of our input or credentials, and callers going away, do not.
func ProviderFault(err error) bool {
	if errors.Is(err, context.Canceled) {
		return false
	}
	return retry.IsRetryable(err) || errors.Is(err, context.DeadlineExceeded)
}

// CircuitBreaker wraps gobreaker.CircuitBreaker.
type CircuitBreaker struct {
	breaker *gobreaker.CircuitBreaker
	name    string
}

// New creates a circuit breaker.
func New(cfg Config) *CircuitBreaker {
	settings := gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("circuit", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	}
	if cfg.CountsAsFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !cfg.CountsAsFailure(err)
		}
	}

	return &CircuitBreaker{
		breaker: gobreaker.NewCircuitBreaker(settings),
		name:    cfg.Name,
	}
}

// Execute runs fn through the breaker. While open it fails fast with
// gobreaker.ErrOpenState.
func (cb *CircuitBreaker) Execute(fn func() (interface{}, error)) (interface{}, error) {
	return cb.breaker.Execute(fn)
}

func (cb *CircuitBreaker) State() gobreaker.State {
	return cb.breaker.State()
}

func (cb *CircuitBreaker) Name() string {
	return cb.name
}

// IsOpen reports whether calls are currently rejected.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.breaker.State() == gobreaker.StateOpen
}

// IsOpenError reports whether err was returned because the breaker rejected
// the call (open state, or too many half-open probes).
func IsOpenError(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
