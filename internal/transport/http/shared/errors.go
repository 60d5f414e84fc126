package shared

import (
	"errors"
	"log/slog"
	"net/http"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
	"ems/internal/domain/reports"
	"ems/internal/transport/http/api"
)

// WriteError maps a domain error onto the JSON envelope. Anything unknown is
// logged and reported as a 500 without detail.
func WriteError(w http.ResponseWriter, requestID string, err error) {
	var fields employee.ValidationErrors
	switch {
	case errors.As(err, &fields):
		issues := make([]ValidationIssue, 0, len(fields))
		for _, f := range fields {
			issues = append(issues, ValidationIssue{Field: f.Field, Reason: f.Message})
		}
		FailValidation(w, requestID, issues)
	case errors.Is(err, payroll.ErrInvalidPeriod),
		errors.Is(err, payroll.ErrInvalidEmployee),
		errors.Is(err, reports.ErrUnknownDimension):
		api.Fail(w, http.StatusBadRequest, "validation_error", err.Error(), requestID)
	case errors.Is(err, auth.ErrForbidden):
		api.Fail(w, http.StatusForbidden, "forbidden", "not permitted for this user", requestID)
	case errors.Is(err, auth.ErrInvalidCredentials):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials", requestID)
	case errors.Is(err, employee.ErrNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "employee not found", requestID)
	case errors.Is(err, payroll.ErrStatementNotFound):
		api.Fail(w, http.StatusNotFound, "not_found", "pay statement not found", requestID)
	case errors.Is(err, employee.ErrDuplicateEmail):
		api.Fail(w, http.StatusConflict, "duplicate_email", "an employee with this email already exists", requestID)
	case errors.Is(err, auth.ErrDuplicateUsername), errors.Is(err, employee.ErrDuplicateLogin):
		api.Fail(w, http.StatusConflict, "duplicate_username", "username already taken", requestID)
	default:
		slog.Error("request failed", "err", err, "requestId", requestID)
		api.Fail(w, http.StatusInternalServerError, "internal_error", "internal server error", requestID)
	}
}
