package lab

import (
	"log/slog"
	"net/http"

	"lexfeed/internal/handler/http/auth"
	"lexfeed/internal/usecase/studylab"
)

// Register wires the study lab endpoints onto the mux, all behind bearer
// token auth.
func Register(mux *http.ServeMux, svc *studylab.Service, authCfg auth.Config, logger *slog.Logger) {
	h := Handler{Svc: svc, Logger: logger}
	protect := auth.Middleware(authCfg)

	mux.Handle("POST /lab/flashcards", protect(http.HandlerFunc(h.Flashcards)))
	mux.Handle("POST /lab/mindmap", protect(http.HandlerFunc(h.MindMap)))
	mux.Handle("POST /lab/brief", protect(http.HandlerFunc(h.Briefing)))
}
