// Package lab exposes the study lab endpoints: flashcards, mind map, and
// briefing note generation from pasted text or a source URL.
package lab

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lexfeed/internal/handler/http/requestid"
	"lexfeed/internal/handler/http/respond"
	"lexfeed/internal/usecase/studylab"
)

// generateRequest is the body of every lab endpoint: pasted text, or a URL
// to fetch the source text from. Text wins when both are present.
type generateRequest struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// Handler serves the three artifact endpoints over one studylab service.
type Handler struct {
	Svc    *studylab.Service
	Logger *slog.Logger
}

// Flashcards handles POST /lab/flashcards.
func (h Handler) Flashcards(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "flashcards", func(text string, r *http.Request) (any, error) {
		return h.Svc.Flashcards(r.Context(), text)
	})
}

// MindMap handles POST /lab/mindmap.
func (h Handler) MindMap(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "mindmap", func(text string, r *http.Request) (any, error) {
		return h.Svc.MindMap(r.Context(), text)
	})
}

// Briefing handles POST /lab/brief.
func (h Handler) Briefing(w http.ResponseWriter, r *http.Request) {
	h.generate(w, r, "brief", func(text string, r *http.Request) (any, error) {
		return h.Svc.Briefing(r.Context(), text)
	})
}

// generate decodes the request, resolves the source text, runs the artifact
// generator, and maps failures to HTTP statuses. Lab operations surface
// errors, unlike the batch endpoints.
func (h Handler) generate(w http.ResponseWriter, r *http.Request, artifact string, run func(text string, r *http.Request) (any, error)) {
	ctx := r.Context()
	start := time.Now()
	logger := h.Logger.With(
		slog.String("request_id", requestid.FromContext(ctx)),
		slog.String("artifact", artifact))

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.SafeError(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
		return
	}

	text, err := h.Svc.Resolve(ctx, req.Text, req.URL)
	if err != nil {
		if errors.Is(err, studylab.ErrEmptyInput) {
			respond.SafeError(w, http.StatusBadRequest, err)
			return
		}
		// URL fetch failures are the client's URL, not our backend.
		logger.WarnContext(ctx, "source resolution failed",
			slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, http.StatusUnprocessableEntity,
			respond.NewAppError(http.StatusUnprocessableEntity, "source URL could not be fetched", err))
		return
	}

	result, err := run(text, r)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, studylab.ErrEmptyResult) {
			status = http.StatusUnprocessableEntity
		}
		logger.ErrorContext(ctx, "generation failed",
			slog.Duration("duration", time.Since(start)),
			slog.String("error", respond.SanitizeError(err)))
		respond.SafeError(w, status,
			respond.NewAppError(status, "generation failed, try again later", err))
		return
	}

	logger.InfoContext(ctx, "artifact generated",
		slog.Duration("duration", time.Since(start)))
	respond.JSON(w, http.StatusOK, map[string]any{artifact: result})
}
