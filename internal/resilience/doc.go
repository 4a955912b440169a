// Package resilience provides reliability patterns for external collaborators.
// It includes circuit breakers for the generative backend and the source-page
// fetcher, plus bounded exponential-backoff retry logic.
//
// Usage Example:
//
//	cb := circuitbreaker.New(circuitbreaker.GeneratorAPIConfig("claude"))
//	result, err := cb.Execute(func() (interface{}, error) {
//	    return callBackend()
//	})
//
//	err := retry.WithBackoff(ctx, retry.GeneratorConfig(), func() error {
//	    return performOperation()
//	})
package resilience
