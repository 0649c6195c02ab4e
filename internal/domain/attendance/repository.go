package attendance

import (
	"context"
	"time"
)

// ClosedRecordFilter scopes a recalculation pass. A nil From/To leaves that
// side of the window open; the manual full recalculation passes both nil.
type ClosedRecordFilter struct {
	From *time.Time
	To   *time.Time
}

// AccountingFields are the derived values the time-accounting engine writes
// back onto a closed record.
type AccountingFields struct {
	RegularHours         float64
	OvertimeHours        float64
	DelayMinutes         float64
	EarlyCheckoutPenalty float64
}

// Repository defines data access for attendance records and break sessions.
type Repository interface {
	Create(ctx context.Context, record Record) (Record, error)

	GetByID(ctx context.Context, id string) (Record, error)

	// GetOpenByEmployeeAndDate returns the open (not yet checked-out) record
	// for the employee on the work date, or ErrNoOpenRecord.
	GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (Record, error)

	// HasRecordForDate is used to prevent double check-in per work date.
	HasRecordForDate(ctx context.Context, employeeID string, workDate time.Time) (bool, error)

	// Close writes check-out time, status and the first accounting pass.
	// When danglingSession is non-nil (a break was still open at check-out)
	// the session row is inserted in the same transaction, so a failed close
	// leaves no session behind and a retry cannot double-count the interval.
	Close(ctx context.Context, record Record, danglingSession *BreakSession) error

	// ListClosed returns closed records within the filter window, oldest
	// first, for recalculation.
	ListClosed(ctx context.Context, filter ClosedRecordFilter) ([]Record, error)

	// ListByEmployeeAndRange returns the employee's records in [from, to]
	// ordered by work date, for listings and performance aggregation.
	ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]Record, error)

	// UpdateAccounting rewrites only the derived accounting fields.
	UpdateAccounting(ctx context.Context, recordID string, fields AccountingFields) error

	// EndBreak closes an open break in one transaction: the break state is
	// cleared (guarded on the record still being on break, ErrNotOnBreak
	// otherwise), the session row is inserted and the record's break total is
	// moved. Either all three land or none do.
	EndBreak(ctx context.Context, session BreakSession, totalBreakMinutes int) error

	// BeginBreak conditionally opens a break: the write only applies when the
	// stored record is still open and working, so interleaved break starts on
	// the same record surface as ErrAlreadyOnBreak.
	BeginBreak(ctx context.Context, recordID string, state BreakState) error
}
