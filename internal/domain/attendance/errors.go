package attendance

import "errors"

// Attendance domain errors
var (
	// Check-in / check-out errors
	ErrAlreadyCheckedIn  = errors.New("you have already checked in for this work date")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")
	ErrAlreadyCheckedOut = errors.New("you have already checked out")
	ErrNoOpenRecord      = errors.New("no open attendance record found")

	// Break state machine errors
	ErrBreakReasonRequired = errors.New("break reason is required")
	ErrBreakReasonTooLong  = errors.New("break reason must be at most 100 characters")
	ErrAlreadyOnBreak      = errors.New("a break is already in progress")
	ErrNotOnBreak          = errors.New("no break is currently in progress")

	// General errors
	ErrRecordNotFound = errors.New("attendance record not found")
)
