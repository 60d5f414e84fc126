package payroll

import (
	"fmt"
	"sort"
	"time"

	"ems/internal/domain/employee"
)

// ExpandMonth generates one statement per employee per semi-monthly period.
// An empty roster yields an empty slice. The result is sorted by pay date and
// then employee id.
func ExpandMonth(year int, month time.Month, roster []employee.Employee) ([]Statement, error) {
	periods, err := PeriodsForMonth(year, month)
	if err != nil {
		return nil, err
	}

	out := make([]Statement, 0, len(periods)*len(roster))
	for _, period := range periods {
		for _, emp := range roster {
			stmt, err := Generate(emp, period)
			if err != nil {
				return nil, fmt.Errorf("employee %d, pay date %s: %w", emp.ID, period.PayDate.Format(dateLayout), err)
			}
			out = append(out, stmt)
		}
	}
	SortStatements(out)
	return out, nil
}

// SortStatements orders statements by pay date, then employee id.
func SortStatements(statements []Statement) {
	sort.SliceStable(statements, func(i, j int) bool {
		a, b := statements[i], statements[j]
		if !a.Period.PayDate.Equal(b.Period.PayDate) {
			return a.Period.PayDate.Before(b.Period.PayDate)
		}
		return a.EmployeeID < b.EmployeeID
	})
}
