package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ems/internal/domain/auth"
)

type ctxKey string

const (
	ctxKeyUser      ctxKey = "user"
	ctxKeyRequestID ctxKey = "requestID"

	RequestIDHeader = "X-Request-ID"
)

// RequestID propagates an inbound X-Request-ID or assigns a fresh one.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), ctxKeyRequestID, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKeyRequestID).(string)
	return id
}

func WithUser(ctx context.Context, viewer auth.Viewer) context.Context {
	return context.WithValue(ctx, ctxKeyUser, viewer)
}

func GetUser(ctx context.Context) (auth.Viewer, bool) {
	user, ok := ctx.Value(ctxKeyUser).(auth.Viewer)
	return user, ok
}
