package reportshandler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/auth"
	"ems/internal/domain/reports"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

type Handler struct {
	Service *reports.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *reports.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/reports", func(r chi.Router) {
		r.Use(middleware.RequirePermission(auth.PermReportsRead, h.Perms))
		r.Get("/pay-by-job-title", h.payBy(reports.DimensionJobTitle))
		r.Get("/pay-by-division", h.payBy(reports.DimensionDivision))
	})
}

func (h *Handler) payBy(dim reports.Dimension) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := shared.Viewer(w, r)
		if !ok {
			return
		}
		requestID := middleware.GetRequestID(r.Context())
		report, err := h.Service.PayBy(r.Context(), viewer, dim)
		if err != nil {
			shared.WriteError(w, requestID, err)
			return
		}
		api.Success(w, report, requestID)
	}
}
