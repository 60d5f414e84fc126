package authhandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Auth      *auth.Service
	Employees *employee.Service
}

func NewHandler(authSvc *auth.Service, employees *employee.Service) *Handler {
	return &Handler{Auth: authSvc, Employees: employees}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type meResponse struct {
	User     auth.Viewer      `json:"user"`
	Employee *employee.Record `json:"employee,omitempty"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireAuth).Post("/auth/logout", h.HandleLogout)
	r.With(middleware.RequireAuth).Get("/me", h.HandleMe)
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}

	v := shared.NewValidator()
	v.Required("username", payload.Username, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, requestID) {
		return
	}

	token, user, err := h.Auth.Login(r.Context(), strings.TrimSpace(payload.Username), payload.Password)
	if err != nil {
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			slog.Error("login failed", "err", err, "requestId", requestID)
		}
		shared.WriteError(w, requestID, err)
		return
	}

	api.Success(w, map[string]any{
		"token": token,
		"user":  user.Viewer(),
	}, requestID)
}

// HandleLogout acknowledges the logout. Tokens are stateless; the client
// discards its copy.
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	api.Success(w, map[string]string{"status": "logged_out"}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMe(w http.ResponseWriter, r *http.Request) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	resp := meResponse{User: viewer}
	if viewer.EmployeeID != nil {
		emp, err := h.Employees.Get(r.Context(), *viewer.EmployeeID)
		switch {
		case err == nil:
			if !viewer.IsAdmin() {
				emp = employee.RedactSensitive(emp)
			}
			record := employee.FromEmployee(emp)
			resp.Employee = &record
		case errors.Is(err, employee.ErrNotFound):
		default:
			shared.WriteError(w, requestID, err)
			return
		}
	}
	api.Success(w, resp, requestID)
}
