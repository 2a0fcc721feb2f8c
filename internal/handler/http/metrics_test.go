package http

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_PathLabels(t *testing.T) {
	httpRequestsTotal.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("OK"))
	}))

	tests := []struct {
		path      string
		wantLabel string
	}{
		{"/api/summarize", "/api/summarize"},
		{"/health", "/health"},
		{"/wp-admin/setup.php", "/:unmatched"},
		{"/api/summarize/extra", "/:unmatched"},
		{"/.env", "/:unmatched"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tt.wantLabel, "200"))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", tt.path, nil))
			after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", tt.wantLabel, "200"))
			assert.Equal(t, before+1, after)
		})
	}

	// Random probes collapse into one series.
	assert.Equal(t, 3, testutil.CollectAndCount(httpRequestsTotal))
}

func TestMetricsMiddleware_StatusCodes(t *testing.T) {
	httpRequestsTotal.Reset()

	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusTooManyRequests, http.StatusInternalServerError} {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", "/api/summarize", nil))
		assert.Equal(t, code, rec.Code)
	}

	for _, status := range []string{"200", "400", "429", "500"} {
		assert.Equal(t, float64(1), testutil.ToFloat64(httpRequestsTotal.WithLabelValues("POST", "/api/summarize", status)), status)
	}
}

func TestMetricsMiddleware_Sizes(t *testing.T) {
	httpRequestSize.Reset()
	httpResponseSize.Reset()

	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.Copy(io.Discard, r.Body)
		_, _ = w.Write([]byte(strings.Repeat("x", 512)))
	}))

	req := httptest.NewRequest("POST", "/api/summarize", strings.NewReader(`{"content":"hello","mode":"text"}`))
	handler.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestSize))
	assert.Equal(t, 1, testutil.CollectAndCount(httpResponseSize))
}

func TestMetricsMiddleware_DurationIgnoresStatus(t *testing.T) {
	httpRequestDuration.Reset()

	for _, code := range []int{http.StatusOK, http.StatusBadRequest, http.StatusGatewayTimeout} {
		handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(code)
		}))
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("POST", "/api/summarize", nil))
	}

	assert.Equal(t, 1, testutil.CollectAndCount(httpRequestDuration))
}

func TestMetricsMiddleware_InFlight(t *testing.T) {
	var during float64
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		during = testutil.ToFloat64(httpRequestsInFlight)
	}))

	before := testutil.ToFloat64(httpRequestsInFlight)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/live", nil))

	assert.Equal(t, before+1, during)
	assert.Equal(t, before, testutil.ToFloat64(httpRequestsInFlight))
}

func TestMetricsHandler(t *testing.T) {
	MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})).
		ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/health", nil))

	rec := httptest.NewRecorder()
	MetricsHandler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
	assert.Contains(t, rec.Body.String(), "http_request_duration_seconds")
}

func BenchmarkMetricsMiddleware(b *testing.B) {
	handler := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	req := httptest.NewRequest("POST", "/api/summarize", nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.ServeHTTP(httptest.NewRecorder(), req)
	}
}
