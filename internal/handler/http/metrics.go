package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tldr/internal/handler/http/pathutil"
	"tldr/internal/handler/http/responsewriter"
)

// Request bodies are capped by InputValidation and summaries are short, so
// both size histograms top out around a megabyte.
var sizeBuckets = prometheus.ExponentialBuckets(64, 4, 8)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status code",
		},
		[]string{"method", "route", "code"},
	)

	// Summarize calls wait on remote models, so the buckets reach past a minute.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Time from the first middleware to the last byte written",
			Buckets: []float64{.005, .025, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 90},
		},
		[]string{"method", "route"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Requests currently being served",
		},
	)

	httpRequestSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_size_bytes",
			Help:    "Declared Content-Length of request bodies",
			Buckets: sizeBuckets,
		},
		[]string{"route"},
	)

	httpResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "Bytes written in response bodies",
			Buckets: sizeBuckets,
		},
		[]string{"route"},
	)
)

// MetricsMiddleware observes every request under a route label from
// pathutil.NormalizePath, so probes for unknown paths share one series.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		route := pathutil.NormalizePath(r.URL.Path)
		if r.ContentLength > 0 {
			httpRequestSize.WithLabelValues(route).Observe(float64(r.ContentLength))
		}

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		start := time.Now()
		rw := responsewriter.Wrap(w)
		next.ServeHTTP(rw, r)

		httpRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.StatusCode())).Inc()
		httpRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
		httpResponseSize.WithLabelValues(route).Observe(float64(rw.BytesWritten()))
	})
}

// MetricsHandler serves the default registry, which holds both these HTTP
// series and the tldr_* business metrics.
func MetricsHandler() http.Handler {
	return promhttp.HandlerFor(prometheus.DefaultGatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	})
}
