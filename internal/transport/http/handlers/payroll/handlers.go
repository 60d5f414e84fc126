package payrollhandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
	"ems/internal/transport/http/api"
	"ems/internal/transport/http/middleware"
	"ems/internal/transport/http/shared"
)

const raiseApplyEndpoint = "payroll.raises.apply"

type Handler struct {
	Payroll     *payroll.Service
	Employees   *employee.Service
	Idempotency *middleware.IdempotencyStore
	Perms       middleware.PermissionStore
	Now         func() time.Time
}

func NewHandler(payrollSvc *payroll.Service, employees *employee.Service, idem *middleware.IdempotencyStore, perms middleware.PermissionStore) *Handler {
	return &Handler{Payroll: payrollSvc, Employees: employees, Idempotency: idem, Perms: perms, Now: time.Now}
}

type periodView struct {
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	PayDate   string `json:"payDate"`
}

type statementsResponse struct {
	Year       int                     `json:"year"`
	Month      int                     `json:"month"`
	Statements []payroll.StatementView `json:"statements"`
}

type raiseResponse struct {
	Lines   []employee.RaiseLine `json:"lines"`
	Updated int                  `json:"updated"`
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payroll", func(r chi.Router) {
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/periods", h.handlePeriods)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/statements", h.handleStatements)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/statements/export", h.handleExport)
		r.With(middleware.RequirePermission(auth.PermPayrollRead, h.Perms)).Get("/statements/{employeeID}/{payDate}/pdf", h.handleStatementPDF)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/raises/preview", h.handleRaisePreview)
		r.With(middleware.RequirePermission(auth.PermPayrollWrite, h.Perms)).Post("/raises/apply", h.handleRaiseApply)
	})
}

func (h *Handler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Handler) yearMonth(w http.ResponseWriter, r *http.Request) (int, time.Month, bool) {
	v := shared.NewValidator()
	year, month := v.YearMonth(r.URL.Query().Get("year"), r.URL.Query().Get("month"), h.now())
	if v.Reject(w, middleware.GetRequestID(r.Context())) {
		return 0, 0, false
	}
	return year, month, true
}

func (h *Handler) handlePeriods(w http.ResponseWriter, r *http.Request) {
	year, month, ok := h.yearMonth(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	periods, err := payroll.PeriodsForMonth(year, month)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	out := make([]periodView, 0, len(periods))
	for _, p := range periods {
		out = append(out, periodView{
			StartDate: p.Start.Format(employee.DateLayout),
			EndDate:   p.End.Format(employee.DateLayout),
			PayDate:   p.PayDate.Format(employee.DateLayout),
		})
	}
	api.Success(w, map[string]any{"year": year, "month": int(month), "periods": out}, requestID)
}

// monthStatements runs the viewer-filtered expansion shared by the JSON and
// CSV endpoints. employeeId is optional.
func (h *Handler) monthStatements(w http.ResponseWriter, r *http.Request) (int, time.Month, []payroll.Statement, bool) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return 0, 0, nil, false
	}
	year, month, ok := h.yearMonth(w, r)
	if !ok {
		return 0, 0, nil, false
	}
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	employeeID := v.PositiveID("employeeId", r.URL.Query().Get("employeeId"))
	if v.Reject(w, requestID) {
		return 0, 0, nil, false
	}

	statements, err := h.Payroll.MonthStatements(r.Context(), viewer, year, month, employeeID)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return 0, 0, nil, false
	}
	return year, month, statements, true
}

func (h *Handler) handleStatements(w http.ResponseWriter, r *http.Request) {
	year, month, statements, ok := h.monthStatements(w, r)
	if !ok {
		return
	}
	api.Success(w, statementsResponse{
		Year:       year,
		Month:      int(month),
		Statements: payroll.Views(statements),
	}, middleware.GetRequestID(r.Context()))
}

func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	year, month, statements, ok := h.monthStatements(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=pay-statements-%04d-%02d.csv", year, int(month)))
	if err := payroll.WriteCSV(w, statements); err != nil {
		slog.Error("csv export failed", "err", err, "requestId", middleware.GetRequestID(r.Context()))
	}
}

func (h *Handler) handleStatementPDF(w http.ResponseWriter, r *http.Request) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return
	}
	employeeID, ok := shared.PathID(w, r, "employeeID")
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	v := shared.NewValidator()
	payDate, _ := v.Date("payDate", chi.URLParam(r, "payDate"))
	if v.Reject(w, requestID) {
		return
	}

	stmt, err := h.Payroll.Statement(r.Context(), viewer, employeeID, payDate)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=pay-statement-%d-%s.pdf", employeeID, payDate.Format(employee.DateLayout)))
	if err := payroll.WritePDF(w, stmt); err != nil {
		slog.Error("pdf render failed", "err", err, "requestId", requestID)
	}
}

func (h *Handler) handleRaisePreview(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var req employee.RaiseRequest
	if !shared.DecodeJSON(w, r, &req) {
		return
	}
	lines, err := h.Employees.PreviewRaise(r.Context(), req)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	api.Success(w, raiseResponse{Lines: lines}, requestID)
}

// handleRaiseApply persists a raise. With an Idempotency-Key header, a retry
// carrying the same body replays the first response instead of raising twice.
func (h *Handler) handleRaiseApply(w http.ResponseWriter, r *http.Request) {
	viewer, ok := shared.Viewer(w, r)
	if !ok {
		return
	}
	requestID := middleware.GetRequestID(r.Context())

	raw, ok := shared.ReadBody(w, r)
	if !ok {
		return
	}
	var req employee.RaiseRequest
	if !shared.UnmarshalJSON(w, r, raw, &req) {
		return
	}

	idempotencyKey := strings.TrimSpace(r.Header.Get(middleware.IdempotencyKeyHeader))
	requestHash := middleware.RequestHash(raw)
	if idempotencyKey != "" {
		stored, found, err := h.Idempotency.Check(r.Context(), viewer.UserID, raiseApplyEndpoint, idempotencyKey, requestHash)
		if errors.Is(err, middleware.ErrIdempotencyConflict) {
			api.Fail(w, http.StatusConflict, "idempotency_conflict", "idempotency key was used with a different request", requestID)
			return
		}
		if err != nil {
			slog.Warn("idempotency check failed", "err", err, "requestId", requestID)
		}
		if found {
			api.Success(w, stored, requestID)
			return
		}
	}

	lines, err := h.Employees.ApplyRaise(r.Context(), req)
	if err != nil {
		shared.WriteError(w, requestID, err)
		return
	}
	resp := raiseResponse{Lines: lines, Updated: len(lines)}

	if idempotencyKey != "" {
		payload, err := json.Marshal(resp)
		if err == nil {
			err = h.Idempotency.Save(r.Context(), viewer.UserID, raiseApplyEndpoint, idempotencyKey, requestHash, payload)
		}
		if err != nil {
			slog.Warn("idempotency save failed", "err", err, "requestId", requestID)
		}
	}
	slog.Info("salary raise applied", "updated", len(lines), "userId", viewer.UserID, "requestId", requestID)
	api.Success(w, resp, requestID)
}
