package feed

import (
	"log/slog"
	"net/http"

	"lexfeed/internal/common/pagination"
	"lexfeed/internal/domain/entity"
	feedUC "lexfeed/internal/usecase/feed"
)

// Register wires the feed endpoints onto the mux. All feed routes are public
// reads; auth applies only to the study lab.
func Register(mux *http.ServeMux, svc *feedUC.Service, paginationCfg pagination.Config, logger *slog.Logger) {
	for path, kind := range map[string]entity.Kind{
		"/news":      entity.KindNews,
		"/articles":  entity.KindArticles,
		"/judgments": entity.KindJudgments,
		"/statutes":  entity.KindStatutes,
	} {
		mux.Handle("GET "+path, ListHandler{
			Svc:           svc,
			Kind:          kind,
			PaginationCfg: paginationCfg,
			Logger:        logger,
		})
	}

	mux.Handle("GET /jurisdiction/{code}", JurisdictionHandler{
		Svc:           svc,
		PaginationCfg: paginationCfg,
		Logger:        logger,
	})
}
