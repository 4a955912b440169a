package metrics

import (
	"time"
)

// RecordHTTPRequest records an HTTP request with its duration.
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordBatchFetch records one batch fetch operation and the size of the
// batch returned to the caller. Outcome should be "ok", "empty", or "cache".
func RecordBatchFetch(kind, outcome string, records int) {
	BatchFetchesTotal.WithLabelValues(kind, outcome).Inc()
	BatchRecordsReturned.WithLabelValues(kind).Observe(float64(records))
}

// RecordRecordDropped records a record rejected by the sanitizer.
// Reason matches the sanitizer's rejection reasons (error_page, blocked_host,
// invalid_url, no_url).
func RecordRecordDropped(kind, reason string) {
	RecordsDroppedTotal.WithLabelValues(kind, reason).Inc()
}

// RecordGeneratorCall records one call against the generative backend.
// Status should be either "success" or "failure".
func RecordGeneratorCall(provider string, success bool, duration time.Duration) {
	status := "success"
	if !success {
		status = "failure"
	}
	GeneratorCallsTotal.WithLabelValues(provider, status).Inc()
	GeneratorCallDuration.WithLabelValues(provider).Observe(duration.Seconds())
}

// RecordRetryAttempt records a retry attempt for a named operation.
func RecordRetryAttempt(operation string) {
	RetryAttemptsTotal.WithLabelValues(operation).Inc()
}

// RecordLabGeneration records the outcome of a study lab generation.
// Artifact is one of "flashcards", "mindmap", "brief".
func RecordLabGeneration(artifact string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	LabGenerationsTotal.WithLabelValues(artifact, status).Inc()
}

// RecordContentFetchSuccess records a successful source page fetch.
func RecordContentFetchSuccess(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("success").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}

// RecordContentFetchFailed records a failed source page fetch.
func RecordContentFetchFailed(duration time.Duration) {
	ContentFetchAttemptsTotal.WithLabelValues("failure").Inc()
	ContentFetchDuration.Observe(duration.Seconds())
}
