package auth

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"lexfeed/internal/handler/http/requestid"
	"lexfeed/internal/handler/http/respond"
)

type tokenRequest struct {
	AccessKey string `json:"access_key"`
}

type tokenResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"` // seconds
}

// TokenHandler exchanges the configured access key for a signed JWT.
// POST /auth/token with {"access_key": "..."}.
func TokenHandler(cfg Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		logger := slog.With(slog.String("request_id", requestid.FromContext(r.Context())))

		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			logger.Warn("token issuance failed",
				slog.String("reason", "invalid_request"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			respond.Error(w, http.StatusBadRequest, fmt.Errorf("invalid request body"))
			return
		}

		if !cfg.VerifyAccessKey(req.AccessKey) {
			logger.Warn("token issuance failed",
				slog.String("reason", "invalid_access_key"),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			respond.Error(w, http.StatusUnauthorized, fmt.Errorf("unauthorized"))
			return
		}

		signed, err := IssueToken(cfg)
		if err != nil {
			logger.Error("token generation failed",
				slog.String("error", err.Error()),
				slog.Int64("duration_ms", time.Since(start).Milliseconds()))
			respond.SafeError(w, http.StatusInternalServerError, err)
			return
		}

		logger.Info("token issued",
			slog.Int64("duration_ms", time.Since(start).Milliseconds()))
		respond.JSON(w, http.StatusOK, tokenResponse{
			Token:     signed,
			ExpiresIn: int64(cfg.TokenTTL.Seconds()),
		})
	}
}
