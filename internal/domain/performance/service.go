package performance

import "context"

// Service defines business logic for performance scoring.
type Service interface {
	// GetMonthly returns the stored rollup for the employee and month,
	// computing it on the fly when none is stored yet.
	GetMonthly(ctx context.Context, employeeID, monthYear string) (RecordResponse, error)

	// Recompute re-derives and upserts the monthly rollup from the
	// employee's attendance records and rating samples. Safe to re-run.
	Recompute(ctx context.Context, employeeID, monthYear string) (RecordResponse, error)
}
