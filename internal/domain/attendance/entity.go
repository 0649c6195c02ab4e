package attendance

import (
	"strings"
	"time"
)

// Record statuses. closed_audit marks records whose check-out had to close a
// dangling break session; these are kept for manual review.
const (
	StatusOpen        = "open"
	StatusClosed      = "closed"
	StatusClosedAudit = "closed_audit"
)

// BreakState is a tagged union: either the employee is working, or they are
// on a break that started at Since for the given Reason. Since and Reason are
// zero exactly when OnBreak is false.
type BreakState struct {
	OnBreak bool
	Since   time.Time
	Reason  string
}

// Working is the initial break state of every record.
func Working() BreakState {
	return BreakState{}
}

// OnBreak returns the state for an open break session.
func OnBreak(since time.Time, reason string) BreakState {
	return BreakState{OnBreak: true, Since: since, Reason: reason}
}

// Record is one employee's attendance for one work-date. The derived fields
// (RegularHours through TotalBreakMinutes) are owned by the time-accounting
// engine and rewritten whenever rules or inputs change; records are corrected,
// never deleted.
type Record struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	ShiftID    *string
	CheckIn    time.Time
	CheckOut   *time.Time

	RegularHours         float64
	OvertimeHours        float64
	DelayMinutes         float64
	EarlyCheckoutPenalty float64
	TotalBreakMinutes    int

	Break    BreakState
	Sessions []BreakSession

	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined for listings
	EmployeeName *string
}

// BreakSession is a closed break interval. Sessions are appended, never
// mutated, and never overlap within one record.
type BreakSession struct {
	ID              string
	RecordID        string
	StartTime       time.Time
	EndTime         time.Time
	DurationMinutes int
	Reason          string
	CreatedAt       time.Time
}

// MaxBreakReasonLength bounds the free-text break reason.
const MaxBreakReasonLength = 100

// StartBreak transitions Working -> OnBreak. The reason must be non-empty
// after trimming and at most MaxBreakReasonLength characters.
func (r *Record) StartBreak(now time.Time, reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ErrBreakReasonRequired
	}
	if len(reason) > MaxBreakReasonLength {
		return ErrBreakReasonTooLong
	}
	if r.CheckOut != nil {
		return ErrAlreadyCheckedOut
	}
	if r.Break.OnBreak {
		return ErrAlreadyOnBreak
	}
	r.Break = OnBreak(now, reason)
	return nil
}

// StopBreak transitions OnBreak -> Working, appending the closed session and
// accruing its whole minutes into TotalBreakMinutes.
func (r *Record) StopBreak(now time.Time) (BreakSession, error) {
	if !r.Break.OnBreak {
		return BreakSession{}, ErrNotOnBreak
	}
	session := BreakSession{
		RecordID:        r.ID,
		StartTime:       r.Break.Since,
		EndTime:         now,
		DurationMinutes: int(now.Sub(r.Break.Since).Minutes()),
		Reason:          r.Break.Reason,
	}
	r.Sessions = append(r.Sessions, session)
	r.TotalBreakMinutes += session.DurationMinutes
	r.Break = Working()
	return session, nil
}

// CloseDanglingBreak force-closes an open break at check-out time. Returns
// the closed session and true when a break was actually open; callers must
// flag the record for audit in that case.
func (r *Record) CloseDanglingBreak(checkOut time.Time) (BreakSession, bool) {
	if !r.Break.OnBreak {
		return BreakSession{}, false
	}
	session, _ := r.StopBreak(checkOut)
	return session, true
}
