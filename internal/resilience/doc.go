// Package resilience groups the fault tolerance helpers used around
// summarization backend calls.
//
//   - circuitbreaker: stops calling a provider that keeps failing
//   - retry: exponential backoff with jitter for transient failures
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.SummarizerConfig("openai"))
//	err := retry.WithBackoff(ctx, retry.BackendConfig(3), func() error {
//	    _, err := cb.Execute(func() (interface{}, error) {
//	        return callBackend(ctx)
//	    })
//	    return err
//	})
package resilience
