package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tldr/internal/observability/metrics"
)

// mockIPExtractorFunc is a function-based IPExtractor for testing.
type mockIPExtractorFunc func(*http.Request) (string, error)

func (f mockIPExtractorFunc) ExtractIP(r *http.Request) (string, error) {
	return f(r)
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doRequest(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/summarize", strings.NewReader(`{}`))
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNewIPRateLimiter_Defaults(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 1}, nil)

	assert.Equal(t, 10, rl.config.Burst)
	assert.Equal(t, 10*time.Minute, rl.config.IdleTTL)
	assert.IsType(t, RemoteAddrExtractor{}, rl.ipExtractor)
	assert.True(t, rl.Enabled())
}

func TestIPRateLimiter_Disabled(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 0, Burst: 1}, nil)
	h := rl.Middleware()(okHandler())

	for i := 0; i < 20; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.1:1234").Code)
	}
	assert.Zero(t, rl.Len())

	var nilLimiter *IPRateLimiter
	assert.False(t, nilLimiter.Enabled())
}

func TestIPRateLimiter_BurstThenDeny(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 0.5, Burst: 3}, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }
	h := rl.Middleware()(okHandler())

	deniedBefore := testutil.ToFloat64(metrics.RateLimitDecisionsTotal.WithLabelValues("denied"))

	for i := 0; i < 3; i++ {
		w := doRequest(h, "192.0.2.1:1234")
		require.Equal(t, http.StatusOK, w.Code, "request %d", i)
		assert.Equal(t, "3", w.Header().Get("X-RateLimit-Limit"))
	}

	w := doRequest(h, "192.0.2.1:1234")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("Retry-After"))
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Too many requests, please try again later"}`, w.Body.String())
	assert.Equal(t, deniedBefore+1, testutil.ToFloat64(metrics.RateLimitDecisionsTotal.WithLabelValues("denied")))

	// A different client has its own bucket.
	assert.Equal(t, http.StatusOK, doRequest(h, "198.51.100.7:4321").Code)

	// Tokens refill at the configured rate.
	now = now.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, doRequest(h, "192.0.2.1:1234").Code)
}

func TestIPRateLimiter_DeniedRequestDoesNotConsumeToken(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 1, Burst: 1}, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return now }

	ok, _ := rl.Allow("a")
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		ok, wait := rl.Allow("a")
		assert.False(t, ok)
		assert.Equal(t, time.Second, wait)
	}

	now = now.Add(time.Second)
	ok, _ = rl.Allow("a")
	assert.True(t, ok)
}

func TestIPRateLimiter_ExtractorErrorFailsOpen(t *testing.T) {
	extractor := mockIPExtractorFunc(func(*http.Request) (string, error) {
		return "", errors.New("invalid address format")
	})
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 1, Burst: 1}, extractor)
	h := rl.Middleware()(okHandler())

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doRequest(h, "garbage").Code)
	}
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 1, Burst: 1, IdleTTL: time.Minute}, nil)
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	rl.now = func() time.Time { return start }
	rl.Allow("old")
	rl.now = func() time.Time { return start.Add(50 * time.Second) }
	rl.Allow("recent")
	require.Equal(t, 2, rl.Len())

	removed := rl.Cleanup(start.Add(90 * time.Second))

	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, rl.Len())
	assert.Equal(t, float64(1), testutil.ToFloat64(metrics.RateLimitActiveKeys))
}

func TestIPRateLimiter_Concurrent(t *testing.T) {
	rl := NewIPRateLimiter(IPRateLimiterConfig{Rate: 0.001, Burst: 5}, nil)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if ok, _ := rl.Allow("192.0.2.9"); ok {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}
