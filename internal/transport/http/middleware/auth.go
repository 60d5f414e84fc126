package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
)

// UserChecker confirms that a token's user still exists.
type UserChecker interface {
	UserExists(ctx context.Context, userID int64) (bool, error)
}

// Auth attaches the viewer of a valid bearer token to the request context.
// Requests without a usable token pass through anonymously; RequireAuth and
// RequirePermission reject them later.
func Auth(secret string, users UserChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(w, r)
				return
			}

			claims, err := auth.ParseToken(secret, parts[1])
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			if users != nil {
				exists, err := users.UserExists(r.Context(), claims.UserID)
				if err != nil {
					slog.Error("user lookup failed", "err", err, "userId", claims.UserID)
					api.Fail(w, http.StatusInternalServerError, "auth_error", "authentication failed", GetRequestID(r.Context()))
					return
				}
				if !exists {
					next.ServeHTTP(w, r)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), claims.Viewer())))
		})
	}
}

func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetUser(r.Context()); !ok {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", GetRequestID(r.Context()))
			return
		}
		next.ServeHTTP(w, r)
	})
}
