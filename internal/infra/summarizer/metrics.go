package summarizer

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SummaryMetricsRecorder abstracts how backend calls are measured, so tests
// can inject a recorder instead of Prometheus.
type SummaryMetricsRecorder interface {
	// RecordLength records the length of a generated summary in characters.
	RecordLength(provider string, length int)

	// RecordDuration records the time taken by a backend call, retries included.
	RecordDuration(provider string, duration time.Duration)

	// RecordFailure counts a backend call that ended in an error.
	RecordFailure(provider string)
}

// PrometheusSummaryMetrics implements SummaryMetricsRecorder using Prometheus metrics.
type PrometheusSummaryMetrics struct {
	lengthHistogram   *prometheus.HistogramVec
	durationHistogram *prometheus.HistogramVec
	failureCounter    *prometheus.CounterVec
}

var (
	prometheusMetricsInstance *PrometheusSummaryMetrics
	prometheusMetricsOnce     sync.Once
)

// getOrCreateHistogramVec gets an existing histogram vector or creates a new one if it doesn't exist
func getOrCreateHistogramVec(opts prometheus.HistogramOpts, labels []string) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(opts, labels)
	if err := prometheus.Register(h); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.HistogramVec)
		}
		return promauto.NewHistogramVec(opts, labels)
	}
	return h
}

// getOrCreateCounterVec gets an existing counter vector or creates a new one if it doesn't exist
func getOrCreateCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(opts, labels)
	if err := prometheus.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return are.ExistingCollector.(*prometheus.CounterVec)
		}
		return promauto.NewCounterVec(opts, labels)
	}
	return c
}

// NewPrometheusSummaryMetrics returns the process-wide Prometheus recorder.
// Uses singleton pattern to avoid duplicate metric registration in tests.
func NewPrometheusSummaryMetrics() *PrometheusSummaryMetrics {
	prometheusMetricsOnce.Do(func() {
		prometheusMetricsInstance = &PrometheusSummaryMetrics{
			lengthHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "tldr_summary_length_characters",
				Help:    "Distribution of summary lengths in characters (Unicode runes)",
				Buckets: []float64{50, 100, 200, 300, 500, 800, 1200, 2000},
			}, []string{"provider"}),
			durationHistogram: getOrCreateHistogramVec(prometheus.HistogramOpts{
				Name:    "tldr_backend_duration_seconds",
				Help:    "Time taken by a summarization backend call",
				Buckets: prometheus.ExponentialBuckets(0.25, 2, 10),
			}, []string{"provider"}),
			failureCounter: getOrCreateCounterVec(prometheus.CounterOpts{
				Name: "tldr_backend_failures_total",
				Help: "Total number of summarization backend calls that failed",
			}, []string{"provider"}),
		}
	})
	return prometheusMetricsInstance
}

// RecordLength implements SummaryMetricsRecorder.RecordLength
func (p *PrometheusSummaryMetrics) RecordLength(provider string, length int) {
	p.lengthHistogram.WithLabelValues(provider).Observe(float64(length))
}

// RecordDuration implements SummaryMetricsRecorder.RecordDuration
func (p *PrometheusSummaryMetrics) RecordDuration(provider string, duration time.Duration) {
	p.durationHistogram.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordFailure implements SummaryMetricsRecorder.RecordFailure
func (p *PrometheusSummaryMetrics) RecordFailure(provider string) {
	p.failureCounter.WithLabelValues(provider).Inc()
}
