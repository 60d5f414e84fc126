package employee

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used for hire dates on the wire and in storage.
const DateLayout = "2006-01-02"

var monthsPerYear = decimal.NewFromInt(12)

// Employee is a roster entry. JobTitle and Division are optional; a nil
// pointer means the category was never recorded.
type Employee struct {
	ID        int64           `json:"id"`
	FirstName string          `json:"firstName"`
	LastName  string          `json:"lastName"`
	Email     string          `json:"email"`
	HireDate  time.Time       `json:"hireDate"`
	Salary    decimal.Decimal `json:"salary"`
	JobTitle  *string         `json:"jobTitle,omitempty"`
	Division  *string         `json:"division,omitempty"`
	SSN       string          `json:"ssn,omitempty"`
}

func (e Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// JobTitleValue returns the job title, or "" when it is absent.
func (e Employee) JobTitleValue() string {
	if e.JobTitle == nil {
		return ""
	}
	return *e.JobTitle
}

// DivisionValue returns the division, or "" when it is absent.
func (e Employee) DivisionValue() string {
	if e.Division == nil {
		return ""
	}
	return *e.Division
}

// MonthlySalary is the annual salary divided by twelve, unrounded.
func (e Employee) MonthlySalary() decimal.Decimal {
	return e.Salary.Div(monthsPerYear)
}

// Login is an optional account created together with an employee record.
type Login struct {
	Username     string
	PasswordHash string
}

// Record is the JSON shape accepted by the API and by roster files.
type Record struct {
	ID        int64            `json:"id,omitempty"`
	FirstName string           `json:"firstName"`
	LastName  string           `json:"lastName"`
	Email     string           `json:"email"`
	HireDate  string           `json:"hireDate"`
	Salary    *decimal.Decimal `json:"salary"`
	JobTitle  *string          `json:"jobTitle,omitempty"`
	Division  *string          `json:"division,omitempty"`
	SSN       string           `json:"ssn,omitempty"`
}

// ToEmployee converts and validates a record. The returned error is a
// ValidationErrors value when any field is rejected.
func (r Record) ToEmployee() (Employee, error) {
	var errs ValidationErrors
	emp := Employee{
		ID:        r.ID,
		FirstName: strings.TrimSpace(r.FirstName),
		LastName:  strings.TrimSpace(r.LastName),
		Email:     strings.TrimSpace(r.Email),
		JobTitle:  trimOptional(r.JobTitle),
		Division:  trimOptional(r.Division),
		SSN:       strings.TrimSpace(r.SSN),
	}

	if raw := strings.TrimSpace(r.HireDate); raw != "" {
		parsed, err := time.Parse(DateLayout, raw)
		if err != nil {
			errs.add("hireDate", "must be a date in YYYY-MM-DD format")
		} else {
			emp.HireDate = parsed
		}
	}
	if r.Salary == nil {
		errs.add("salary", "is required")
	} else {
		emp.Salary = *r.Salary
	}

	if err := emp.Validate(); err != nil {
		errs.merge(err)
	}
	if len(errs) > 0 {
		return Employee{}, errs
	}
	return emp, nil
}

// FromEmployee is the inverse of ToEmployee.
func FromEmployee(e Employee) Record {
	salary := e.Salary
	return Record{
		ID:        e.ID,
		FirstName: e.FirstName,
		LastName:  e.LastName,
		Email:     e.Email,
		HireDate:  e.HireDate.Format(DateLayout),
		Salary:    &salary,
		JobTitle:  e.JobTitle,
		Division:  e.Division,
		SSN:       e.SSN,
	}
}

func trimOptional(value *string) *string {
	if value == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*value)
	return &trimmed
}
