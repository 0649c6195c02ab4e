package workday

import (
	"fmt"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// Boundary brackets one work-day: [Start, End). WorkDate is the calendar date
// the window is attributed to, which is Start's date and may differ from the
// literal date of a timestamp inside the window.
type Boundary struct {
	Start    time.Time
	End      time.Time
	WorkDate time.Time
}

// Resolver attributes instants to work-dates. The work-day opens at a
// configured clock time (default 09:00) and runs until a rollover clock time
// on the following calendar day (default 04:30), so a 02:00 check-out still
// belongs to the previous date's shift.
type Resolver struct {
	startMinutes    int
	rolloverMinutes int
}

// NewResolver builds a resolver from "HH:MM" clock strings.
func NewResolver(startTime, rolloverTime string) (*Resolver, error) {
	startMins, ok := validator.ClockMinutes(startTime)
	if !ok {
		return nil, fmt.Errorf("invalid work-day start time %q", startTime)
	}
	rolloverMins, ok := validator.ClockMinutes(rolloverTime)
	if !ok {
		return nil, fmt.Errorf("invalid work-day rollover time %q", rolloverTime)
	}
	if rolloverMins >= startMins {
		return nil, fmt.Errorf("rollover time %q must fall before the work-day start %q", rolloverTime, startTime)
	}
	return &Resolver{startMinutes: startMins, rolloverMinutes: rolloverMins}, nil
}

// Resolve returns the work-day boundary containing now. Start is the most
// recent work-day opening at or before now; End is the rollover instant on
// the calendar day after Start. Pure function of now and config.
func (r *Resolver) Resolve(now time.Time) Boundary {
	year, month, day := now.Date()
	start := time.Date(year, month, day, r.startMinutes/60, r.startMinutes%60, 0, 0, now.Location())
	if now.Before(start) {
		start = start.AddDate(0, 0, -1)
	}

	end := time.Date(start.Year(), start.Month(), start.Day(), r.rolloverMinutes/60, r.rolloverMinutes%60, 0, 0, now.Location()).AddDate(0, 0, 1)

	workDate := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	return Boundary{Start: start, End: end, WorkDate: workDate}
}

// WorkDate is a convenience wrapper returning only the attributed date.
func (r *Resolver) WorkDate(now time.Time) time.Time {
	return r.Resolve(now).WorkDate
}
