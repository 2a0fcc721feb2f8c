package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Business metrics track summarization pipeline outcomes
var (
	// SummariesTotal counts summarize requests by input mode and outcome.
	// outcome is "success" or the error category (invalid_input, fetch, ...).
	SummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_summaries_total",
			Help: "Total number of summarize requests by mode and outcome",
		},
		[]string{"mode", "outcome"},
	)

	// PostResolutionTotal counts which stage produced a social post's text
	PostResolutionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_post_resolution_total",
			Help: "Total number of resolved social posts by producing stage",
		},
		[]string{"stage"}, // stage: api, scrape, page_text
	)

	// ContentFetchTotal counts page fetch attempts by result
	ContentFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_content_fetch_total",
			Help: "Total number of page fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchDuration measures time to fetch and extract a page
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tldr_content_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract a page",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)

	// ContentFetchSize measures extracted text size in characters
	ContentFetchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tldr_content_fetch_size_characters",
			Help:    "Extracted page text size in characters",
			Buckets: []float64{100, 250, 500, 1000, 2000, 4000, 8000},
		},
	)

	// RateLimitDecisionsTotal counts per-IP limiter decisions
	RateLimitDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tldr_rate_limit_decisions_total",
			Help: "Total number of rate limit decisions",
		},
		[]string{"result"}, // result: allowed, denied
	)

	// RateLimitActiveKeys is the number of client addresses being tracked
	RateLimitActiveKeys = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tldr_rate_limit_active_keys",
			Help: "Number of client addresses tracked by the rate limiter",
		},
	)
)
