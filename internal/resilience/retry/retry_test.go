package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastConfig(attempts int) Config {
	return Config{
		MaxAttempts:    attempts,
		InitialDelay:   time.Millisecond,
		MaxDelay:       5 * time.Millisecond,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

func TestWithBackoff(t *testing.T) {
	transient := &HTTPError{StatusCode: 503, Message: "model loading"}
	permanent := &HTTPError{StatusCode: 401, Message: "bad key"}

	tests := []struct {
		name         string
		maxAttempts  int
		failures     []error
		wantAttempts int
		wantErr      error
	}{
		{name: "success first try", maxAttempts: 3, failures: nil, wantAttempts: 1},
		{name: "success after retry", maxAttempts: 3, failures: []error{transient, transient}, wantAttempts: 3},
		{name: "attempts exhausted", maxAttempts: 3, failures: []error{transient, transient, transient}, wantAttempts: 3, wantErr: transient},
		{name: "non-retryable stops", maxAttempts: 3, failures: []error{permanent}, wantAttempts: 1, wantErr: permanent},
		{name: "single attempt never retries", maxAttempts: 1, failures: []error{transient}, wantAttempts: 1, wantErr: transient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			err := WithBackoff(context.Background(), fastConfig(tt.maxAttempts), func() error {
				attempts++
				if attempts <= len(tt.failures) {
					return tt.failures[attempts-1]
				}
				return nil
			})

			assert.Equal(t, tt.wantAttempts, attempts)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWithBackoff_SingleAttemptReturnsErrorUnwrapped(t *testing.T) {
	cause := &HTTPError{StatusCode: 500, Message: "boom"}

	err := WithBackoff(context.Background(), BackendConfig(1), func() error { return cause })

	assert.Same(t, cause, err)
}

func TestWithBackoff_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cfg := fastConfig(10)
	cfg.InitialDelay = time.Second

	attempts := 0
	err := WithBackoff(ctx, cfg, func() error {
		attempts++
		cancel()
		return &HTTPError{StatusCode: 502}
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

var _ net.Error = timeoutErr{}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{name: "nil error", err: nil, retryable: false},
		{name: "context canceled", err: context.Canceled, retryable: false},
		{name: "context deadline exceeded", err: context.DeadlineExceeded, retryable: false},
		{name: "HTTP 500", err: &HTTPError{StatusCode: 500}, retryable: true},
		{name: "HTTP 503", err: &HTTPError{StatusCode: 503}, retryable: true},
		{name: "HTTP 429", err: &HTTPError{StatusCode: 429}, retryable: true},
		{name: "HTTP 408", err: &HTTPError{StatusCode: 408}, retryable: true},
		{name: "HTTP 400", err: &HTTPError{StatusCode: 400}, retryable: false},
		{name: "HTTP 401", err: &HTTPError{StatusCode: 401}, retryable: false},
		{name: "wrapped HTTP 502", err: fmt.Errorf("backend: %w", &HTTPError{StatusCode: 502}), retryable: true},
		{name: "network timeout", err: timeoutErr{}, retryable: true},
		{name: "connection refused", err: syscall.ECONNREFUSED, retryable: true},
		{name: "connection reset", err: fmt.Errorf("read: %w", syscall.ECONNRESET), retryable: true},
		{name: "plain error", err: errors.New("bad request"), retryable: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, IsRetryable(tt.err))
		})
	}
}

func TestBackendConfig(t *testing.T) {
	assert.Equal(t, 1, BackendConfig(1).MaxAttempts)
	assert.Equal(t, 3, BackendConfig(3).MaxAttempts)
	assert.Equal(t, 1, BackendConfig(0).MaxAttempts)
	assert.Equal(t, 2*time.Second, BackendConfig(3).InitialDelay)
	assert.Equal(t, 10*time.Second, BackendConfig(3).MaxDelay)
}

func TestWithBackoff_HonorsRetryAfter(t *testing.T) {
	cfg := fastConfig(2)
	cfg.MaxDelay = 50 * time.Millisecond

	attempts := 0
	start := time.Now()
	err := WithBackoff(context.Background(), cfg, func() error {
		attempts++
		if attempts == 1 {
			return &HTTPError{StatusCode: 503, Message: "model loading", RetryAfter: 30 * time.Millisecond}
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, attempts)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestNextWait(t *testing.T) {
	cfg := Config{MaxDelay: 10 * time.Second}

	assert.Equal(t, 2*time.Second, nextWait(2*time.Second, errors.New("x"), cfg))
	assert.Equal(t, 5*time.Second, nextWait(2*time.Second, &HTTPError{StatusCode: 429, RetryAfter: 5 * time.Second}, cfg))
	assert.Equal(t, 10*time.Second, nextWait(2*time.Second, &HTTPError{StatusCode: 503, RetryAfter: time.Minute}, cfg))
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, 7*time.Second, ParseRetryAfter("7"))
	assert.Equal(t, 7*time.Second, ParseRetryAfter(" 7 "))
	assert.Zero(t, ParseRetryAfter(""))
	assert.Zero(t, ParseRetryAfter("-1"))
	assert.Zero(t, ParseRetryAfter("Wed, 21 Oct 2026 07:28:00 GMT"))
}

func TestHTTPError_Error(t *testing.T) {
	err := &HTTPError{StatusCode: 503, Message: "model is currently loading"}
	assert.Equal(t, "HTTP 503: model is currently loading", err.Error())
}

func TestAddJitter(t *testing.T) {
	duration := 100 * time.Millisecond

	for i := 0; i < 10; i++ {
		result := addJitter(duration, 0.2)
		assert.GreaterOrEqual(t, result, duration)
		assert.LessOrEqual(t, result, 120*time.Millisecond)
	}

	assert.Equal(t, duration, addJitter(duration, 0))
}
