package http

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lexfeed/internal/handler/http/responsewriter"
	"lexfeed/internal/observability/metrics"
)

// MetricsMiddleware records request count and latency per method, path, and
// status into the central Prometheus registry. Paths with a variable segment
// are normalized so label cardinality stays bounded.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		wrapped := responsewriter.Wrap(w)

		start := time.Now()
		next.ServeHTTP(wrapped, r)

		metrics.RecordHTTPRequest(
			r.Method,
			normalizePath(r.URL.Path),
			strconv.Itoa(wrapped.StatusCode()),
			time.Since(start),
		)
	})
}

// normalizePath collapses variable path segments.
// Example: /jurisdiction/in-ka -> /jurisdiction/:code
func normalizePath(path string) string {
	if strings.HasPrefix(path, "/jurisdiction/") {
		return "/jurisdiction/:code"
	}
	return path
}

// MetricsHandler serves the Prometheus scrape endpoint.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
