package shared

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
	"ems/internal/domain/payroll"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{err: employee.ValidationErrors{{Field: "email", Message: "is required"}}, status: http.StatusBadRequest, code: "validation_error"},
		{err: fmt.Errorf("wrapped: %w", payroll.ErrInvalidPeriod), status: http.StatusBadRequest, code: "validation_error"},
		{err: auth.ErrForbidden, status: http.StatusForbidden, code: "forbidden"},
		{err: employee.ErrNotFound, status: http.StatusNotFound, code: "not_found"},
		{err: employee.ErrDuplicateEmail, status: http.StatusConflict, code: "duplicate_email"},
		{err: employee.ErrDuplicateLogin, status: http.StatusConflict, code: "duplicate_username"},
		{err: fmt.Errorf("boom"), status: http.StatusInternalServerError, code: "internal_error"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(rec, "req-1", tc.err)
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())

		var body struct {
			Success bool `json:"success"`
			Error   struct {
				Code string `json:"code"`
			} `json:"error"`
			RequestID string `json:"requestId"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.False(t, body.Success)
		assert.Equal(t, tc.code, body.Error.Code)
		assert.Equal(t, "req-1", body.RequestID)
	}
}

func TestValidatorYearMonth(t *testing.T) {
	now := time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC)

	v := NewValidator()
	year, month := v.YearMonth("", "", now)
	assert.False(t, v.HasIssues())
	assert.Equal(t, 2024, year)
	assert.Equal(t, time.May, month)

	v = NewValidator()
	year, month = v.YearMonth("2023", "2", now)
	assert.False(t, v.HasIssues())
	assert.Equal(t, 2023, year)
	assert.Equal(t, time.February, month)

	v = NewValidator()
	v.YearMonth("2023", "13", now)
	require.Len(t, v.Issues(), 1)
	assert.Equal(t, "month", v.Issues()[0].Field)
}

func TestPage(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	assert.Equal(t, []int{3, 4}, Page(items, Pagination{Limit: 2, Offset: 2}))
	assert.Equal(t, []int{5}, Page(items, Pagination{Limit: 10, Offset: 4}))
	assert.Empty(t, Page(items, Pagination{Limit: 10, Offset: 9}))
}

func TestValidatorDate(t *testing.T) {
	v := NewValidator()
	got, ok := v.Date("payDate", "2024-02-29")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC), got)

	got, ok = v.Date("payDate", "2024-03-15T10:30:00+02:00")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), got)
	assert.False(t, v.HasIssues())

	for _, raw := range []string{"", "2023-02-29", "15/03/2024"} {
		v = NewValidator()
		_, ok = v.Date("payDate", raw)
		assert.False(t, ok, raw)
		require.Len(t, v.Issues(), 1, raw)
		assert.Equal(t, "payDate", v.Issues()[0].Field)
	}
}

func TestValidatorCollectsSortedIssues(t *testing.T) {
	v := NewValidator()
	v.Required("username", "  ", "is required")
	v.MinLength("password", "short", 8)
	v.MinLength("nickname", "", 8)
	v.Enum("field", "SSN", []string{"name", "ssn"}, "unknown field")
	v.Enum("role", "owner", []string{"admin", "employee"}, "unknown role")
	v.Check(false, "id", "cannot be changed")
	assert.Equal(t, int64(0), v.PositiveID("employeeId", ""))
	assert.Equal(t, int64(12), v.PositiveID("employeeId", " 12 "))
	assert.Equal(t, int64(0), v.PositiveID("managerId", "-3"))

	assert.Equal(t, []ValidationIssue{
		{Field: "id", Reason: "cannot be changed"},
		{Field: "managerId", Reason: "must be a positive integer"},
		{Field: "password", Reason: "must be at least 8 characters"},
		{Field: "role", Reason: "unknown role"},
		{Field: "username", Reason: "is required"},
	}, v.Issues())

	rec := httptest.NewRecorder()
	require.True(t, v.Reject(rec, "req-9"))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, NewValidator().Reject(httptest.NewRecorder(), "req-10"))
}

func TestValidatorPagination(t *testing.T) {
	v := NewValidator()
	assert.Equal(t, Pagination{Limit: 100}, v.Pagination(url.Values{}, 100, 500))
	assert.Equal(t, Pagination{Limit: 500, Offset: 20}, v.Pagination(url.Values{"limit": {"9000"}, "offset": {"20"}}, 100, 500))
	assert.False(t, v.HasIssues())

	v.Pagination(url.Values{"limit": {"0"}, "offset": {"-1"}}, 100, 500)
	require.Len(t, v.Issues(), 2)
	assert.Equal(t, "limit", v.Issues()[0].Field)
	assert.Equal(t, "offset", v.Issues()[1].Field)
}
