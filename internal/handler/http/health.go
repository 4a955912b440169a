// Package http provides the HTTP handlers and middleware for the content API:
// feed and study lab endpoints, auth token issuance, health checks, metrics,
// and the access-log / recovery / rate-limit middleware chain.
package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// HealthResponse is the body of the health check endpoint.
type HealthResponse struct {
	Status    string                 `json:"status"`    // "healthy" or "degraded"
	Timestamp string                 `json:"timestamp"` // ISO 8601
	Checks    map[string]CheckStatus `json:"checks"`
	Version   string                 `json:"version"`
}

// CheckStatus is the status of a single health check item.
type CheckStatus struct {
	Status  string         `json:"status"`
	Message string         `json:"message,omitempty"`
	Details map[string]any `json:"details,omitempty"`
}

// HealthHandler reports operational status. The service holds no durable
// state, so health is about configuration: which generator backend is wired
// and where the sanitize policy came from.
type HealthHandler struct {
	Version      string
	Provider     string // generator backend in use: "claude", "openai", "noop"
	PolicySource string // "default" or the overriding policy file path
}

// ServeHTTP returns 200 with per-item checks. A NoOp generator reports the
// whole service as degraded: every batch will be empty, but the process is
// serving.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]CheckStatus)
	status := "healthy"

	generatorCheck := CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"provider": h.Provider},
	}
	if h.Provider == "noop" {
		generatorCheck.Status = "degraded"
		generatorCheck.Message = "no backend credentials configured"
		status = "degraded"
	}
	checks["generator"] = generatorCheck

	checks["sanitize_policy"] = CheckStatus{
		Status:  "healthy",
		Details: map[string]any{"source": h.PolicySource},
	}

	response := HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Checks:    checks,
		Version:   h.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("health: failed to encode response", slog.Any("error", err))
	}
}

// ReadyHandler answers readiness probes. The server is ready as soon as the
// generator is constructed; there is no connection pool to wait for.
type ReadyHandler struct{}

func (h *ReadyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// LiveHandler answers liveness probes with 200 whenever the process responds.
type LiveHandler struct{}

func (h *LiveHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("alive"))
}
