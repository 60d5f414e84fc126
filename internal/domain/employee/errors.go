package employee

import (
	"errors"
	"strings"
)

var (
	ErrInvalid        = errors.New("invalid employee input")
	ErrNotFound       = errors.New("employee not found")
	ErrDuplicateEmail = errors.New("employee email already exists")
	ErrDuplicateLogin = errors.New("login username already exists")
)

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects field problems. It matches ErrInvalid under errors.Is.
type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	parts := make([]string, 0, len(v))
	for _, issue := range v {
		parts = append(parts, issue.Field+" "+issue.Message)
	}
	return "invalid employee input: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrInvalid
}

// add records one problem per field; later problems for the same field are dropped.
func (v *ValidationErrors) add(field, message string) {
	for _, existing := range *v {
		if existing.Field == field {
			return
		}
	}
	*v = append(*v, ValidationError{Field: field, Message: message})
}

func (v *ValidationErrors) merge(err error) {
	var other ValidationErrors
	if !errors.As(err, &other) {
		v.add("", err.Error())
		return
	}
	for _, issue := range other {
		v.add(issue.Field, issue.Message)
	}
}
