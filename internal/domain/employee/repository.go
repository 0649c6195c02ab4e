package employee

import "context"

// Repository defines data access for employees.
type Repository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByCode(ctx context.Context, employeeCode string) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
}
