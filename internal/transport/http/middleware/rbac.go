package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"ems/internal/transport/http/api"
)

// PermissionStore decides whether a role holds a permission.
type PermissionStore interface {
	HasPermission(ctx context.Context, role, permission string) (bool, error)
}

// RequirePermission admits signed-in callers whose role holds permission.
// Anonymous callers get 401, callers lacking the permission 403.
func RequirePermission(permission string, store PermissionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if status, code, message := authorize(r.Context(), store, permission); status != 0 {
				api.Fail(w, status, code, message, GetRequestID(r.Context()))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authorize(ctx context.Context, store PermissionStore, permission string) (int, string, string) {
	user, ok := GetUser(ctx)
	if !ok {
		return http.StatusUnauthorized, "unauthorized", "authentication required"
	}
	allowed, err := store.HasPermission(ctx, user.Role, permission)
	if err != nil {
		slog.Error("permission lookup failed", "role", user.Role, "permission", permission, "err", err)
		return http.StatusInternalServerError, "permission_error", "permission check failed"
	}
	if !allowed {
		slog.Debug("permission denied", "userId", user.UserID, "role", user.Role, "permission", permission)
		return http.StatusForbidden, "forbidden", "insufficient permissions"
	}
	return 0, "", ""
}
