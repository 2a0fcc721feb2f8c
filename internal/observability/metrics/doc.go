// Package metrics provides the business Prometheus metrics of the service.
//
// HTTP request metrics live with the HTTP middleware; this package covers
// the pipeline itself:
//   - summaries per mode and outcome
//   - which stage produced a social post's text
//   - outbound page fetch results, duration and size
//   - per-IP rate limit decisions and tracked clients
//
// All metrics are registered with the Prometheus default registry and
// exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "tldr/internal/observability/metrics"
//
//	start := time.Now()
//	text, err := fetcher.FetchAndExtract(ctx, url)
//	if err != nil {
//	    metrics.RecordContentFetchFailed(time.Since(start))
//	}
package metrics
