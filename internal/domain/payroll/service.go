package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ems/internal/domain/auth"
	"ems/internal/domain/employee"
)

// RosterSource supplies the employees statements are derived from.
type RosterSource interface {
	ListEmployees(ctx context.Context) ([]employee.Employee, error)
	GetEmployee(ctx context.Context, id int64) (employee.Employee, error)
}

// Recorder observes how many statements each request derived.
type Recorder interface {
	StatementsGenerated(count int)
}

type Service struct {
	roster   RosterSource
	recorder Recorder
}

func NewService(roster RosterSource, recorder Recorder) *Service {
	return &Service{roster: roster, recorder: recorder}
}

// MonthStatements derives the month's statements visible to viewer. A
// non-zero employeeID narrows the result to that employee; asking for someone
// the viewer may not see is ErrForbidden.
func (s *Service) MonthStatements(ctx context.Context, viewer auth.Viewer, year int, month time.Month, employeeID int64) ([]Statement, error) {
	if employeeID != 0 && !viewer.CanView(employeeID) {
		return nil, auth.ErrForbidden
	}

	roster, err := s.roster.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("load roster: %w", err)
	}
	roster = auth.FilterRoster(viewer, roster)
	if employeeID != 0 {
		roster = onlyEmployee(roster, employeeID)
	}

	statements, err := ExpandMonth(year, month, roster)
	if err != nil {
		return nil, err
	}
	s.record(len(statements))
	return statements, nil
}

// Statement derives the single statement of employeeID paid on payDate.
func (s *Service) Statement(ctx context.Context, viewer auth.Viewer, employeeID int64, payDate time.Time) (Statement, error) {
	if !viewer.CanView(employeeID) {
		return Statement{}, auth.ErrForbidden
	}
	period, err := PeriodForPayDate(payDate)
	if err != nil {
		return Statement{}, err
	}

	emp, err := s.roster.GetEmployee(ctx, employeeID)
	if errors.Is(err, employee.ErrNotFound) {
		return Statement{}, ErrStatementNotFound
	}
	if err != nil {
		return Statement{}, err
	}

	stmt, err := Generate(emp, period)
	if err != nil {
		return Statement{}, err
	}
	s.record(1)
	return stmt, nil
}

func (s *Service) record(count int) {
	if s.recorder != nil {
		s.recorder.StatementsGenerated(count)
	}
}

func onlyEmployee(roster []employee.Employee, id int64) []employee.Employee {
	for _, emp := range roster {
		if emp.ID == id {
			return []employee.Employee{emp}
		}
	}
	return nil
}
