package employee

import "context"

type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	GetEmployee(ctx context.Context, id int64) (Employee, error)
	CreateEmployee(ctx context.Context, emp Employee, login *Login) (int64, error)
	UpdateEmployee(ctx context.Context, emp Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
	UpdateSalaries(ctx context.Context, lines []RaiseLine) error
}
