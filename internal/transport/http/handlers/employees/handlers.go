package employeehandler

import (
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
	Service *employee.Service
	Perms   middleware.PermissionStore
}

func NewHandler(service *employee.Service, perms middleware.PermissionStore) *Handler {
	return &Handler{Service: service, Perms: perms}
}

// createRequest is an employee record plus an optional password that creates
// a login named after the employee's email.
type createRequest struct {
	employee.Record
	Password string `json:"password,omitempty"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/", h.handleList)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Post("/", h.handleCreate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Get("/search", h.handleSearch)
		r.With(middleware.RequirePermission(auth.PermEmployeesRead, h.Perms)).Get("/{employeeID}", h.handleGet)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Put("/{employeeID}", h.handleUpdate)
		r.With(middleware.RequirePermission(auth.PermEmployeesWrite, h.Perms)).Delete("/{employeeID}", h.handleDelete)
	})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	page := v.Pagination(r.URL.Query(), 100, 500)
	if v.Reject(w, requestID) {
		return
	}

	roster, err := h.Service.List(r.Context())
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	roster = auth.FilterRoster(viewer, roster)

	api.Success(w, map[string]any{
		"employees": records(viewer, shared.Page(roster, page)),
		"total":     len(roster),
		"limit":     page.Limit,
		"offset":    page.Offset,
	}, requestID)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload createRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	payload.ID = 0

	emp, err := payload.ToEmployee()
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}

	var login *employee.Login
	if strings.TrimSpace(payload.Password) != "" {
		v := shared.NewValidator()
		v.MinLength("password", payload.Password, 8)
		if v.Reject(w, requestID) {
			return
		}
		hash, err := auth.HashPassword(payload.Password)
		if err != nil {
			shared.WriteError(w, requestID, err)
			return
		}
		login = &employee.Login{Username: emp.Email, PasswordHash: hash}
	}

	created, err := h.Service.Create(r.Context(), emp, login)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Created(w, employee.FromEmployee(created), requestID)
}

func (h *Handler) handleSearch(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	query := r.URL.Query()

	field := employee.SearchField(strings.ToLower(strings.TrimSpace(query.Get("field"))))
	if field == "" {
		field = employee.SearchByName
	}
	allowed := make([]string, 0, len(employee.SearchFields))
	for _, f := range employee.SearchFields {
		allowed = append(allowed, string(f))
	}
	v := shared.NewValidator()
	v.Enum("field", string(field), allowed, "must be one of name, id, ssn, hire_date")
	if v.Reject(w, requestID) {
		return
	}

	found, err := h.Service.Search(r.Context(), field, query.Get("q"))
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Success(w, map[string]any{"employees": records(auth.Viewer{Role: auth.RoleAdmin}, found)}, requestID)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return
	}
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if !viewer.CanView(id) {
		shared.WriteError(w, requestID, auth.ErrForbidden)
		return
	}

	emp, err := h.Service.Get(r.Context(), id)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Success(w, records(viewer, []employee.Employee{emp})[0], requestID)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	var payload employee.Record
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Check(payload.ID == 0 || payload.ID == id, "id", "cannot be changed")
	if v.Reject(w, requestID) {
		return
	}
	payload.ID = id

	emp, err := payload.ToEmployee()
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	updated, err := h.Service.Update(r.Context(), emp)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Success(w, employee.FromEmployee(updated), requestID)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Service.Delete(r.Context(), id); err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Success(w, map[string]any{"id": id, "status": "deleted"}, requestID)
}

// records converts employees to their wire shape, masking the SSN for
// anyone but an admin.
func records(viewer auth.Viewer, roster []employee.Employee) []employee.Record {
	out := make([]employee.Record, 0, len(roster))
	for _, emp := range roster {
		if !viewer.IsAdmin() {
			emp = employee.RedactSensitive(emp)
		}
		out = append(out, employee.FromEmployee(emp))
	}
	return out
}
