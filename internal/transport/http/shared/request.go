package shared

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/auth"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
)

// Viewer returns the authenticated caller or writes a 401.
func Viewer(w http.ResponseWriter, r *http.Request) (auth.Viewer, bool) {
	user, ok := middleware.GetUser(r.Context())
	if !ok {
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", middleware.GetRequestID(r.Context()))
		return auth.Viewer{}, false
	}
	return user, true
}

// ReadBody reads the whole request body, reporting oversize bodies as 413.
func ReadBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			api.Fail(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large", middleware.GetRequestID(r.Context()))
			return nil, false
		}
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return nil, false
	}
	return raw, true
}

// DecodeJSON decodes the request body into dst or writes a 400.
func DecodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	raw, ok := ReadBody(w, r)
	if !ok {
		return false
	}
	return UnmarshalJSON(w, r, raw, dst)
}

func UnmarshalJSON(w http.ResponseWriter, r *http.Request, raw []byte, dst any) bool {
	if err := json.Unmarshal(raw, dst); err != nil {
		api.Fail(w, http.StatusBadRequest, "invalid_payload", "invalid request payload", middleware.GetRequestID(r.Context()))
		return false
	}
	return true
}

// PathID parses a positive integer URL parameter or writes a 400.
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v := NewValidator()
	raw := chi.URLParam(r, name)
	v.Required(name, raw, "must be a positive integer")
	id := v.PositiveID(name, raw)
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return 0, false
	}
	return id, true
}
