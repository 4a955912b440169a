// Package feed exposes the content batch endpoints. Every list endpoint
// responds 200 with a possibly-empty batch; generation failures never become
// error responses.
package feed

import (
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"time"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/domain/entity"
	"lexfeed/internal/handler/http/requestid"
	"lexfeed/internal/handler/http/respond"
	feedUC "lexfeed/internal/usecase/feed"
)

// batchResponse is the wire shape of one batch: the kind, the surviving
// records, and the page window that produced them.
type batchResponse struct {
	Kind string `json:"kind"`
	pagination.Response[entity.Record]
}

// ListHandler serves one content kind. The same handler backs /news,
// /articles, /judgments, and /statutes, parameterized by Kind.
type ListHandler struct {
	Svc           *feedUC.Service
	Kind          entity.Kind
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h ListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	start := time.Now()

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}
	query := r.URL.Query().Get("q")

	batch := h.Svc.FetchBatch(ctx, h.Kind, query, params)

	h.Logger.InfoContext(ctx, "batch served",
		slog.String("request_id", requestid.FromContext(ctx)),
		slog.String("kind", string(h.Kind)),
		slog.Int("records", len(batch)),
		slog.Duration("duration", time.Since(start)))

	respond.JSON(w, http.StatusOK, batchResponse{
		Kind: string(h.Kind),
		Response: pagination.NewResponse([]entity.Record(batch), pagination.Metadata{
			Page:  params.Page,
			Limit: params.Limit,
			Count: len(batch),
		}),
	})
}

// jurisdictionCodePattern accepts codes like "in", "us-ny", "eu".
var jurisdictionCodePattern = regexp.MustCompile(`^[a-z]{2}(-[a-z0-9]{1,8})?$`)

// JurisdictionHandler serves GET /jurisdiction/{code}.
type JurisdictionHandler struct {
	Svc           *feedUC.Service
	PaginationCfg pagination.Config
	Logger        *slog.Logger
}

func (h JurisdictionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	code := r.PathValue("code")
	if !jurisdictionCodePattern.MatchString(code) {
		respond.SafeError(w, http.StatusBadRequest,
			fmt.Errorf("invalid jurisdiction code %q", code))
		return
	}

	params, err := pagination.ParseQueryParams(r, h.PaginationCfg)
	if err != nil {
		respond.SafeError(w, http.StatusBadRequest, err)
		return
	}

	batch := h.Svc.JurisdictionFeed(ctx, code, params)

	h.Logger.InfoContext(ctx, "jurisdiction batch served",
		slog.String("request_id", requestid.FromContext(ctx)),
		slog.String("code", code),
		slog.Int("records", len(batch)))

	respond.JSON(w, http.StatusOK, batchResponse{
		Kind: string(entity.KindJurisdiction),
		Response: pagination.NewResponse([]entity.Record(batch), pagination.Metadata{
			Page:  params.Page,
			Limit: params.Limit,
			Count: len(batch),
		}),
	})
}
