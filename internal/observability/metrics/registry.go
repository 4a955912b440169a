// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

// Pipeline metrics track the fetch-and-sanitize pipeline
var (
	// BatchFetchesTotal counts batch fetch operations by kind and outcome.
	// Outcome is "ok", "empty" (degraded to empty batch), or "cache" (warm hit).
	BatchFetchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "batch_fetches_total",
			Help: "Total number of content batch fetches",
		},
		[]string{"kind", "outcome"},
	)

	// BatchRecordsReturned measures the size of cleaned batches.
	BatchRecordsReturned = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "batch_records_returned",
			Help:    "Number of records in a cleaned batch",
			Buckets: []float64{0, 1, 2, 5, 10, 15, 20, 30, 50},
		},
		[]string{"kind"},
	)

	// RecordsDroppedTotal counts records rejected by the sanitizer by reason.
	RecordsDroppedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "records_dropped_total",
			Help: "Total number of records rejected by the sanitizer",
		},
		[]string{"kind", "reason"},
	)

	// GeneratorCallsTotal counts generative backend calls by provider and status.
	GeneratorCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "generator_calls_total",
			Help: "Total number of generative backend calls",
		},
		[]string{"provider", "status"},
	)

	// GeneratorCallDuration measures generative backend call latency.
	GeneratorCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "generator_call_duration_seconds",
			Help:    "Generative backend call duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
		[]string{"provider"},
	)

	// RetryAttemptsTotal counts retry attempts against the generative backend.
	RetryAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "retry_attempts_total",
			Help: "Total retry attempts by operation",
		},
		[]string{"operation"},
	)
)

// Study lab and content fetch metrics
var (
	// LabGenerationsTotal counts study lab generations by artifact and status.
	LabGenerationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lab_generations_total",
			Help: "Total study lab generations",
		},
		[]string{"artifact", "status"},
	)

	// ContentFetchAttemptsTotal counts source-page fetch attempts by result.
	ContentFetchAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_fetch_attempts_total",
			Help: "Total number of source page fetch attempts",
		},
		[]string{"result"}, // result: success, failure
	)

	// ContentFetchDuration measures time to fetch and extract a source page.
	ContentFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "content_fetch_duration_seconds",
			Help:    "Time taken to fetch and extract source page text",
			Buckets: []float64{0.1, 0.2, 0.4, 0.8, 1.6, 3.2, 6.4, 12.8},
		},
	)
)
