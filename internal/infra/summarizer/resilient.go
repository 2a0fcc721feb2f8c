package summarizer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"tldr/internal/domain/entity"
	"tldr/internal/resilience/circuitbreaker"
	"tldr/internal/resilience/retry"
	"tldr/internal/usecase/summarize"
	"tldr/internal/utils/text"
)

// Resilient decorates a backend with a per-call timeout, an optional circuit
// breaker, retry with backoff, structured logging and metrics.
type Resilient struct {
	backend         summarize.Backend
	circuitBreaker  *circuitbreaker.CircuitBreaker
	retryConfig     retry.Config
	timeout         time.Duration
	metricsRecorder SummaryMetricsRecorder
}

// NewResilient wraps backend according to cfg. A nil recorder selects the
// Prometheus recorder.
func NewResilient(backend summarize.Backend, cfg Config, recorder SummaryMetricsRecorder) *Resilient {
	if recorder == nil {
		recorder = NewPrometheusSummaryMetrics()
	}
	r := &Resilient{
		backend:         backend,
		retryConfig:     retry.BackendConfig(cfg.MaxAttempts),
		timeout:         cfg.Timeout,
		metricsRecorder: recorder,
	}
	if cfg.CircuitBreaker {
		r.circuitBreaker = circuitbreaker.New(circuitbreaker.SummarizerConfig(backend.Name()))
	}
	return r
}

// Name implements summarize.Backend.
func (r *Resilient) Name() string { return r.backend.Name() }

// CircuitOpen reports whether the breaker is currently rejecting calls.
func (r *Resilient) CircuitOpen() bool {
	return r.circuitBreaker != nil && r.circuitBreaker.IsOpen()
}

// Summarize implements summarize.Backend.
func (r *Resilient) Summarize(ctx context.Context, req entity.BackendRequest) (string, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	callID := uuid.New().String()
	provider := r.Name()

	slog.InfoContext(ctx, "Starting summarization",
		slog.String("call_id", callID),
		slog.String("provider", provider),
		slog.Int("input_length", text.CountRunes(req.Text)),
		slog.Int("budget", req.Budget))

	start := time.Now()

	var result string
	err := retry.WithBackoff(ctx, r.retryConfig, func() error {
		out, err := r.call(ctx, req)
		if err != nil {
			return err
		}
		result = out
		return nil
	})

	duration := time.Since(start)
	r.metricsRecorder.RecordDuration(provider, duration)

	if err != nil {
		r.metricsRecorder.RecordFailure(provider)
		slog.ErrorContext(ctx, "Summarization failed",
			slog.String("call_id", callID),
			slog.String("provider", provider),
			slog.Duration("duration", duration),
			slog.Any("error", err))
		return "", err
	}

	summaryLength := text.CountRunes(result)
	r.metricsRecorder.RecordLength(provider, summaryLength)

	slog.InfoContext(ctx, "Summarization completed",
		slog.String("call_id", callID),
		slog.String("provider", provider),
		slog.Int("summary_length", summaryLength),
		slog.Duration("duration", duration))

	return result, nil
}

// call performs one attempt, through the circuit breaker when enabled.
func (r *Resilient) call(ctx context.Context, req entity.BackendRequest) (string, error) {
	if r.circuitBreaker == nil {
		return r.backend.Summarize(ctx, req)
	}

	out, err := r.circuitBreaker.Execute(func() (interface{}, error) {
		return r.backend.Summarize(ctx, req)
	})
	if err != nil {
		if circuitbreaker.IsOpenError(err) {
			slog.WarnContext(ctx, "summarizer circuit breaker open, request rejected",
				slog.String("circuit", r.circuitBreaker.Name()),
				slog.String("state", r.circuitBreaker.State().String()))
			return "", fmt.Errorf("%s unavailable: %w", r.Name(), err)
		}
		return "", err
	}
	return out.(string), nil
}
