package employee

import (
	"github.com/shopspring/decimal"
)

// MaxRaisePercent caps a single across-the-board raise.
var MaxRaisePercent = decimal.NewFromInt(20)

var hundred = decimal.NewFromInt(100)

type RaiseRequest struct {
	MinSalary *decimal.Decimal `json:"minSalary"`
	MaxSalary *decimal.Decimal `json:"maxSalary"`
	Percent   *decimal.Decimal `json:"percent"`
}

type RaiseLine struct {
	EmployeeID    int64           `json:"employeeId"`
	Name          string          `json:"name"`
	CurrentSalary decimal.Decimal `json:"currentSalary"`
	NewSalary     decimal.Decimal `json:"newSalary"`
}

func (r RaiseRequest) Validate() error {
	var errs ValidationErrors
	if r.MinSalary == nil {
		errs.add("minSalary", "is required")
	} else if r.MinSalary.IsNegative() {
		errs.add("minSalary", "must not be negative")
	}
	if r.MaxSalary == nil {
		errs.add("maxSalary", "is required")
	}
	if r.Percent == nil {
		errs.add("percent", "is required")
	} else if !r.Percent.IsPositive() || r.Percent.GreaterThan(MaxRaisePercent) {
		errs.add("percent", "must be greater than 0 and at most 20")
	}
	if r.MinSalary != nil && r.MaxSalary != nil && !r.MinSalary.LessThan(*r.MaxSalary) {
		errs.add("maxSalary", "must be greater than minSalary")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PlanRaise selects employees earning at least MinSalary and less than
// MaxSalary and computes their new salary rounded to whole units. An empty
// plan is not an error.
func PlanRaise(roster []Employee, req RaiseRequest) ([]RaiseLine, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	factor := decimal.NewFromInt(1).Add(req.Percent.Div(hundred))

	lines := make([]RaiseLine, 0)
	for _, emp := range roster {
		if emp.Salary.LessThan(*req.MinSalary) || !emp.Salary.LessThan(*req.MaxSalary) {
			continue
		}
		lines = append(lines, RaiseLine{
			EmployeeID:    emp.ID,
			Name:          emp.FullName(),
			CurrentSalary: emp.Salary,
			NewSalary:     emp.Salary.Mul(factor).Round(0),
		})
	}
	return lines, nil
}
