package employee

import (
	"net/mail"
	"strings"

	"github.com/shopspring/decimal"
)

// Salaries are stored as NUMERIC(14, 2).
const salaryScale = 2

var maxSalary = decimal.New(1, 12)

// Validate checks the fields every stored employee must carry.
func (e Employee) Validate() error {
	var errs ValidationErrors
	if e.ID < 0 {
		errs.add("id", "must be positive")
	}
	if strings.TrimSpace(e.FirstName) == "" {
		errs.add("firstName", "is required")
	}
	if strings.TrimSpace(e.LastName) == "" {
		errs.add("lastName", "is required")
	}
	if email := strings.TrimSpace(e.Email); email == "" {
		errs.add("email", "is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.add("email", "must be a valid email address")
	}
	if e.HireDate.IsZero() {
		errs.add("hireDate", "is required")
	}
	switch {
	case e.Salary.IsNegative():
		errs.add("salary", "must not be negative")
	case !e.Salary.Equal(e.Salary.Truncate(salaryScale)):
		errs.add("salary", "must have at most two decimal places")
	case e.Salary.GreaterThanOrEqual(maxSalary):
		errs.add("salary", "must be below 1000000000000")
	}
	if strings.TrimSpace(e.SSN) == "" {
		errs.add("ssn", "is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}
