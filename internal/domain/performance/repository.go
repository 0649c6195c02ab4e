package performance

import (
	"context"
	"time"
)

// Repository defines data access for performance records and rating samples.
type Repository interface {
	// Upsert inserts or replaces the record keyed by (employee, month).
	Upsert(ctx context.Context, record Record) (Record, error)

	GetByEmployeeAndMonth(ctx context.Context, employeeID, monthYear string) (Record, error)

	// ListRatings returns external rating samples for the employee whose
	// RatedAt falls in [from, to].
	ListRatings(ctx context.Context, employeeID string, from, to time.Time) ([]RatingSample, error)
}
