package shift

import "errors"

// Shift domain errors
var (
	ErrShiftNotFound      = errors.New("shift definition not found")
	ErrShiftNameExists    = errors.New("shift definition with this name already exists")
	ErrInvalidCategory    = errors.New("invalid shift category")
	ErrInvalidClockTime   = errors.New("shift start/end must be HH:MM clock times")
	ErrAssignmentNotFound = errors.New("shift assignment not found")
	ErrAssignmentExists   = errors.New("employee already has an assignment for this work date")

	// Eligibility errors
	ErrNoAssignment       = errors.New("no shift assigned for this work date")
	ErrDayOff             = errors.New("today is a day off")
	ErrOutsideShiftWindow = errors.New("current time is outside the shift check-in window")
)
