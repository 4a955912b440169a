// Package metrics provides Prometheus metrics registry and recording utilities.
//
// This package centralizes all application metrics including:
//   - HTTP request metrics (duration, count)
//   - Pipeline metrics (batch fetches, sanitizer drops, generator calls, retries)
//   - Study lab and source-fetch metrics
//
// All metrics are automatically registered with the Prometheus default registry
// and exposed via the /metrics endpoint.
//
// Example usage:
//
//	import "lexfeed/internal/observability/metrics"
//
//	func fetch(kind string) {
//	    // ... fetch and sanitize ...
//	    metrics.RecordBatchFetch(kind, "ok", len(batch))
//	}
package metrics
