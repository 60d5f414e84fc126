package employee

import (
	"context"
	"fmt"
)

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) List(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (Employee, error) {
	if id <= 0 {
		return Employee{}, ErrNotFound
	}
	return s.store.GetEmployee(ctx, id)
}

func (s *Service) Create(ctx context.Context, emp Employee, login *Login) (Employee, error) {
	if err := emp.Validate(); err != nil {
		return Employee{}, err
	}
	id, err := s.store.CreateEmployee(ctx, emp, login)
	if err != nil {
		return Employee{}, err
	}
	emp.ID = id
	return emp, nil
}

// Update replaces every mutable field of the employee identified by emp.ID.
func (s *Service) Update(ctx context.Context, emp Employee) (Employee, error) {
	if emp.ID <= 0 {
		return Employee{}, ErrNotFound
	}
	if err := emp.Validate(); err != nil {
		return Employee{}, err
	}
	if err := s.store.UpdateEmployee(ctx, emp); err != nil {
		return Employee{}, err
	}
	return emp, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNotFound
	}
	return s.store.DeleteEmployee(ctx, id)
}

func (s *Service) Search(ctx context.Context, field SearchField, query string) ([]Employee, error) {
	roster, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return Search(roster, field, query)
}

func (s *Service) PreviewRaise(ctx context.Context, req RaiseRequest) ([]RaiseLine, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	roster, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, err
	}
	return PlanRaise(roster, req)
}

// ApplyRaise plans against the current roster and persists the result in a
// single transaction.
func (s *Service) ApplyRaise(ctx context.Context, req RaiseRequest) ([]RaiseLine, error) {
	lines, err := s.PreviewRaise(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpdateSalaries(ctx, lines); err != nil {
		return nil, fmt.Errorf("apply raise: %w", err)
	}
	return lines, nil
}
