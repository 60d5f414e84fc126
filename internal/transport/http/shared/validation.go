package shared

import (
	"net/http"
	"sort"
	"strconv"
	"strings"

	"ems/internal/transport/http/api"
)

// ValidationIssue is one rejected field, reported under error.details.fields.
type ValidationIssue struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// Validator collects field issues for one request so the caller can report
// them together.
type Validator struct {
	issues []ValidationIssue
}

func NewValidator() *Validator {
	return &Validator{}
}

func (v *Validator) Add(field, reason string) {
	if v == nil || strings.TrimSpace(reason) == "" {
		return
	}
	v.issues = append(v.issues, ValidationIssue{Field: strings.TrimSpace(field), Reason: strings.TrimSpace(reason)})
}

// Check records reason against field when ok is false.
func (v *Validator) Check(ok bool, field, reason string) {
	if !ok {
		v.Add(field, reason)
	}
}

func (v *Validator) Required(field, value, reason string) {
	v.Check(strings.TrimSpace(value) != "", field, reason)
}

// MinLength accepts an empty value; pair it with Required when the field is
// mandatory.
func (v *Validator) MinLength(field, value string, n int) {
	if value != "" && len(value) < n {
		v.Add(field, "must be at least "+strconv.Itoa(n)+" characters")
	}
}

// Enum compares case-insensitively and ignores blank values.
func (v *Validator) Enum(field, value string, allowed []string, reason string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	for _, candidate := range allowed {
		if strings.EqualFold(value, strings.TrimSpace(candidate)) {
			return
		}
	}
	v.Add(field, reason)
}

// PositiveID parses an optional positive integer. Blank input yields 0.
func (v *Validator) PositiveID(field, raw string) int64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		v.Add(field, "must be a positive integer")
		return 0
	}
	return id
}

func (v *Validator) HasIssues() bool {
	return v != nil && len(v.issues) > 0
}

// Issues returns the collected issues ordered by field, then reason.
func (v *Validator) Issues() []ValidationIssue {
	if !v.HasIssues() {
		return nil
	}
	out := append([]ValidationIssue(nil), v.issues...)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Field != out[j].Field {
			return out[i].Field < out[j].Field
		}
		return out[i].Reason < out[j].Reason
	})
	return out
}

// Reject writes a 400 when issues were collected and reports whether it did.
func (v *Validator) Reject(w http.ResponseWriter, requestID string) bool {
	if !v.HasIssues() {
		return false
	}
	FailValidation(w, requestID, v.Issues())
	return true
}

func FailValidation(w http.ResponseWriter, requestID string, issues []ValidationIssue) {
	api.FailWithDetails(w, http.StatusBadRequest, "validation_error", "payload validation failed",
		map[string]any{"fields": issues}, requestID)
}
