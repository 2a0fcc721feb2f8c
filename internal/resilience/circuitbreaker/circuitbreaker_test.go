package circuitbreaker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr/internal/resilience/retry"
)

func testConfig() Config {
	return Config{
		Name:             "test-circuit",
		MaxRequests:      1,
		Interval:         10 * time.Second,
		Timeout:          50 * time.Millisecond,
		FailureThreshold: 0.6,
		MinRequests:      3,
	}
}

func TestNew(t *testing.T) {
	cb := New(testConfig())

	require.NotNil(t, cb)
	assert.Equal(t, "test-circuit", cb.Name())
	assert.Equal(t, gobreaker.StateClosed, cb.State())
	assert.False(t, cb.IsOpen())
}

func TestCircuitBreaker_Execute(t *testing.T) {
	cb := New(testConfig())

	result, err := cb.Execute(func() (interface{}, error) {
		return "summary", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "summary", result)

	backendErr := errors.New("backend down")
	_, err = cb.Execute(func() (interface{}, error) {
		return nil, backendErr
	})
	assert.ErrorIs(t, err, backendErr)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_TripsOpenAndRecovers(t *testing.T) {
	cb := New(testConfig())
	backendErr := errors.New("backend down")

	for i := 0; i < 3; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, backendErr })
	}
	require.True(t, cb.IsOpen())

	calls := 0
	_, err := cb.Execute(func() (interface{}, error) {
		calls++
		return nil, nil
	})
	assert.True(t, IsOpenError(err))
	assert.Zero(t, calls, "open breaker must not call through")

	// After Timeout the breaker lets one probe through and closes on success.
	time.Sleep(80 * time.Millisecond)
	assert.Equal(t, gobreaker.StateHalfOpen, cb.State())

	_, err = cb.Execute(func() (interface{}, error) { return "ok", nil })
	require.NoError(t, err)
	assert.Equal(t, gobreaker.StateClosed, cb.State())
}

func TestCircuitBreaker_MinRequests(t *testing.T) {
	cfg := testConfig()
	cfg.MinRequests = 10
	cb := New(cfg)

	for i := 0; i < 4; i++ {
		_, _ = cb.Execute(func() (interface{}, error) { return nil, errors.New("fail") })
	}

	assert.Equal(t, gobreaker.StateClosed, cb.State(), "below MinRequests the breaker stays closed")
}

func TestIsOpenError(t *testing.T) {
	assert.True(t, IsOpenError(gobreaker.ErrOpenState))
	assert.True(t, IsOpenError(gobreaker.ErrTooManyRequests))
	assert.True(t, IsOpenError(fmt.Errorf("wrapped: %w", gobreaker.ErrOpenState)))
	assert.False(t, IsOpenError(errors.New("other")))
	assert.False(t, IsOpenError(nil))
}

func TestSummarizerConfig(t *testing.T) {
	cfg := SummarizerConfig("huggingface")

	assert.Equal(t, "summarizer-huggingface", cfg.Name)
	assert.Equal(t, uint32(3), cfg.MaxRequests)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, 0.6, cfg.FailureThreshold)
	assert.Equal(t, uint32(5), cfg.MinRequests)
	assert.NotNil(t, cfg.CountsAsFailure)
}

func TestProviderFault(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"5xx", &retry.HTTPError{StatusCode: 503}, true},
		{"rate limited", &retry.HTTPError{StatusCode: 429}, true},
		{"call timed out", fmt.Errorf("openai: %w", context.DeadlineExceeded), true},
		{"bad key", &retry.HTTPError{StatusCode: 401}, false},
		{"input rejected", &retry.HTTPError{StatusCode: 400}, false},
		{"caller went away", context.Canceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProviderFault(tt.err))
		})
	}
}

func TestCircuitBreaker_IgnoresClientErrors(t *testing.T) {
	cfg := testConfig()
	cfg.CountsAsFailure = ProviderFault
	cb := New(cfg)

	for i := 0; i < 5; i++ {
		_, err := cb.Execute(func() (interface{}, error) {
			return nil, &retry.HTTPError{StatusCode: 401, Message: "bad key"}
		})
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateClosed, cb.State())

	// 8 faults out of 13 calls crosses the 0.6 ratio.
	for i := 0; i < 8; i++ {
		_, _ = cb.Execute(func() (interface{}, error) {
			return nil, &retry.HTTPError{StatusCode: 502, Message: "bad gateway"}
		})
	}
	assert.True(t, cb.IsOpen())
}
