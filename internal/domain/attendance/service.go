package attendance

import (
	"context"
)

// Service defines business logic for attendance operations
type Service interface {
	// CheckEligibility reports whether the authenticated employee may check
	// in right now, with a human-readable reason when not.
	CheckEligibility(ctx context.Context) (EligibilityResult, error)

	// CheckIn opens an attendance record for the resolved work date after
	// validating shift eligibility.
	CheckIn(ctx context.Context) (RecordResponse, error)

	// CheckOut closes the open record and runs the first accounting pass.
	// A dangling break is closed at check-out time and the record is flagged
	// for audit.
	CheckOut(ctx context.Context) (RecordResponse, error)

	// StartBreak begins a break session on the open record.
	StartBreak(ctx context.Context, req StartBreakRequest) (RecordResponse, error)

	// StopBreak ends the current break session.
	StopBreak(ctx context.Context) (RecordResponse, error)

	// GetMyRecords lists the authenticated employee's records.
	GetMyRecords(ctx context.Context, filter MyRecordsFilter) (ListRecordsResponse, error)

	// ListRecords lists records across employees (admin).
	ListRecords(ctx context.Context, filter RecordsFilter) (ListRecordsResponse, error)
}
