package metrics

import (
	"time"
)

// Post resolution stages.
const (
	StageAPI      = "api"
	StageScrape   = "scrape"
	StagePageText = "page_text"
)

// RecordSummary records the outcome of one summarize request.
func RecordSummary(mode, outcome string) {
	if mode == "" {
		mode = "unknown"
	}
	SummariesTotal.WithLabelValues(mode, outcome).Inc()
}

// RecordPostResolution records which stage produced a post's text.
func RecordPostResolution(stage string) {
	PostResolutionTotal.WithLabelValues(stage).Inc()
}

// RecordContentFetchSuccess records a successful page fetch.
//
// Parameters:
//   - duration: Time taken to fetch and extract the page
//   - size: Length of the extracted text in characters
func RecordContentFetchSuccess(duration time.Duration, size int) {
	ContentFetchTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
	ContentFetchSize.Observe(float64(size))
}

// RecordContentFetchFailed records a failed page fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordRateLimit records one limiter decision.
func RecordRateLimit(allowed bool) {
	result := "allowed"
	if !allowed {
		result = "denied"
	}
	RateLimitDecisionsTotal.WithLabelValues(result).Inc()
}

// SetRateLimitActiveKeys reports how many client addresses are tracked.
func SetRateLimitActiveKeys(n int) {
	RateLimitActiveKeys.Set(float64(n))
}
