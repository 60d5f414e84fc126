package reports

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
)

var ErrUnknownDimension = errors.New("unknown report dimension")

type Dimension string

const (
	DimensionJobTitle Dimension = "job_title"
	DimensionDivision Dimension = "division"
)

func ParseDimension(value string) (Dimension, error) {
	switch d := Dimension(value); d {
	case DimensionJobTitle, DimensionDivision:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, value)
}

// Line is a presentation row: totals in whole units, percentages to two places.
type Line struct {
	Key             string `json:"key"`
	EmployeeCount   int    `json:"employeeCount"`
	TotalMonthlyPay string `json:"totalMonthlyPay"`
	PercentOfTotal  string `json:"percentOfTotal"`
}

type Report struct {
	Dimension     Dimension `json:"dimension"`
	Lines         []Line    `json:"rows"`
	EmployeeCount int       `json:"employeeCount"`
	GrandTotal    string    `json:"grandTotal"`
	// PercentTotal sums the shares: 100.00, or 0.00 when nobody is paid.
	PercentTotal string `json:"percentTotal"`
}

// Build aggregates the whole roster along dim.
func Build(dim Dimension, roster []employee.Employee) (Report, error) {
	var rows []Row
	switch dim {
	case DimensionJobTitle:
		rows = AggregateByJobTitle(roster)
	case DimensionDivision:
		rows = AggregateByDivision(roster)
	default:
		return Report{}, fmt.Errorf("%w: %q", ErrUnknownDimension, dim)
	}

	shares := PercentOfTotal(rows)
	report := Report{
		Dimension:  dim,
		Lines:      make([]Line, 0, len(rows)),
		GrandTotal: GrandTotal(rows).Round(0).StringFixed(0),
	}
	percentTotal := decimal.Zero
	for i, row := range rows {
		report.EmployeeCount += row.EmployeeCount
		percentTotal = percentTotal.Add(shares[i].Percent)
		report.Lines = append(report.Lines, Line{
			Key:             row.Key,
			EmployeeCount:   row.EmployeeCount,
			TotalMonthlyPay: row.DisplayTotal().StringFixed(0),
			PercentOfTotal:  shares[i].Percent.StringFixed(2),
		})
	}
	report.PercentTotal = percentTotal.StringFixed(2)
	return report, nil
}

type RosterLister interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
}

type Service struct {
	roster RosterLister
}

func NewService(roster RosterLister) *Service {
	return &Service{roster: roster}
}

// PayBy reports monthly pay grouped by dim. Percentages only make sense over
// the full roster, so the report is restricted to admins.
func (s *Service) PayBy(ctx context.Context, viewer auth.Viewer, dim Dimension) (Report, error) {
	if err := auth.RequireAdmin(viewer); err != nil {
		return Report{}, err
	}
	roster, err := s.roster.ListEmployees(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("load roster: %w", err)
	}
	return Build(dim, roster)
}
