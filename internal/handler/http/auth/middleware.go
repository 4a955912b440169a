package auth

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"lexfeed/internal/handler/http/requestid"
	"lexfeed/internal/handler/http/respond"
)

// Middleware returns middleware that requires a valid bearer token on every
// request it wraps. Failures respond 401 with a uniform message.
func Middleware(cfg Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			tokenString, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || tokenString == "" {
				respond.Error(w, http.StatusUnauthorized, fmt.Errorf("missing bearer token"))
				return
			}

			if err := ParseToken(cfg, tokenString); err != nil {
				slog.Warn("token rejected",
					slog.String("request_id", requestid.FromContext(r.Context())),
					slog.String("path", r.URL.Path),
					slog.String("error", respond.SanitizeError(err)))
				respond.Error(w, http.StatusUnauthorized, ErrInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
