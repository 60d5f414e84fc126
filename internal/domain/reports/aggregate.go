package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"ems/internal/domain/employee"
)

var hundred = decimal.NewFromInt(100)

// Row summarises the employees sharing one category value.
type Row struct {
	Key             string
	EmployeeCount   int
	TotalMonthlyPay decimal.Decimal
}

// DisplayTotal is TotalMonthlyPay rounded to whole currency units.
func (r Row) DisplayTotal() decimal.Decimal {
	return r.TotalMonthlyPay.Round(0)
}

// KeySelector extracts the grouping key of an employee.
type KeySelector func(employee.Employee) string

var (
	ByJobTitle KeySelector = employee.Employee.JobTitleValue
	ByDivision KeySelector = employee.Employee.DivisionValue
)

// AggregateByKey groups the roster by key. A missing category groups under
// the empty string. Only keys with at least one employee appear.
func AggregateByKey(roster []employee.Employee, key KeySelector) map[string]Row {
	out := make(map[string]Row)
	for _, emp := range roster {
		k := key(emp)
		row := out[k]
		row.Key = k
		row.EmployeeCount++
		row.TotalMonthlyPay = row.TotalMonthlyPay.Add(emp.MonthlySalary())
		out[k] = row
	}
	return out
}

func AggregateByJobTitle(roster []employee.Employee) []Row {
	return sortedRows(AggregateByKey(roster, ByJobTitle))
}

func AggregateByDivision(roster []employee.Employee) []Row {
	return sortedRows(AggregateByKey(roster, ByDivision))
}

func sortedRows(groups map[string]Row) []Row {
	rows := make([]Row, 0, len(groups))
	for _, row := range groups {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Key < rows[j].Key })
	return rows
}

// Share is one group's percentage of the grand total.
type Share struct {
	Key     string
	Percent decimal.Decimal
}

// GrandTotal sums TotalMonthlyPay across rows.
func GrandTotal(rows []Row) decimal.Decimal {
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.TotalMonthlyPay)
	}
	return total
}

// PercentOfTotal expresses every row as a percentage of the grand total.
// rows must be a complete aggregation; a zero grand total yields zero shares.
func PercentOfTotal(rows []Row) []Share {
	total := GrandTotal(rows)
	shares := make([]Share, 0, len(rows))
	for _, row := range rows {
		pct := decimal.Zero
		if !total.IsZero() {
			pct = row.TotalMonthlyPay.Div(total).Mul(hundred)
		}
		shares = append(shares, Share{Key: row.Key, Percent: pct})
	}
	return shares
}
