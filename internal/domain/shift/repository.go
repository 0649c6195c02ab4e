package shift

import (
	"context"
	"time"
)

// DefinitionRepository defines data access for shift definitions.
type DefinitionRepository interface {
	Create(ctx context.Context, def Definition) (Definition, error)
	GetByID(ctx context.Context, id string) (Definition, error)
	List(ctx context.Context) ([]Definition, error)
	Update(ctx context.Context, def Definition) error
	Delete(ctx context.Context, id string) error
}

// AssignmentRepository defines data access for shift assignments.
// There is at most one assignment per (employee, work_date).
type AssignmentRepository interface {
	Upsert(ctx context.Context, assignment Assignment) (Assignment, error)

	// GetByEmployeeAndDate returns the assignment with its shift definition
	// joined, or ErrAssignmentNotFound.
	GetByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Assignment, error)

	ListByDate(ctx context.Context, workDate time.Time) ([]Assignment, error)
	Delete(ctx context.Context, id string) error
}
