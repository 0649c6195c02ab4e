package shift

import (
	"fmt"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/timesheet"
)

// EarlyCheckInWindow is how long before the shift start a check-in is
// already permitted.
const EarlyCheckInWindow = 30 * time.Minute

// Eligibility is the verdict for one (assignment, instant) pair.
type Eligibility struct {
	CanCheckIn bool
	Reason     string
	Shift      *shift.Definition
}

// CheckEligibility decides whether a check-in is currently permitted for the
// employee's assignment on the resolved work-date. Read-only; callers
// re-evaluate on a timer and on assignment changes.
//
// Rules in order: missing assignment and day-off short-circuit; otherwise the
// shift window opens EarlyCheckInWindow before the configured start and
// closes at the (overnight-aware) end time.
func CheckEligibility(assignment *shift.Assignment, now time.Time) Eligibility {
	if assignment == nil || (assignment.ShiftID == nil && !assignment.IsDayOff) {
		return Eligibility{Reason: "no shift assigned for this work date"}
	}
	if assignment.IsDayOff {
		return Eligibility{Reason: "today is a day off"}
	}
	if assignment.Shift == nil {
		return Eligibility{Reason: "no shift assigned for this work date"}
	}

	def := assignment.Shift
	startMins, okStart := validator.ClockMinutes(def.StartTime)
	endMins, okEnd := validator.ClockMinutes(def.EndTime)
	if !okStart || !okEnd {
		return Eligibility{
			Reason: fmt.Sprintf("shift %q has unparsable start/end times", def.Name),
			Shift:  def,
		}
	}

	workDate := assignment.WorkDate
	shiftStart := time.Date(workDate.Year(), workDate.Month(), workDate.Day(),
		startMins/60, startMins%60, 0, 0, now.Location())
	shiftEnd := time.Date(workDate.Year(), workDate.Month(), workDate.Day(),
		endMins/60, endMins%60, 0, 0, now.Location())
	if endMins < startMins {
		// Overnight shift: the end lands on the next calendar day and the
		// window stays open across midnight.
		shiftEnd = shiftEnd.AddDate(0, 0, 1)
	}

	windowOpen := shiftStart.Add(-EarlyCheckInWindow)

	if now.Before(windowOpen) {
		return Eligibility{
			Reason: fmt.Sprintf("too early to check in: shift %q runs %s-%s, check-in opens at %s",
				def.Name, def.StartTime, def.EndTime, windowOpen.Format("15:04")),
			Shift: def,
		}
	}

	if !now.Before(shiftEnd) {
		return Eligibility{
			Reason: fmt.Sprintf("shift already ended: shift %q ran %s-%s",
				def.Name, def.StartTime, def.EndTime),
			Shift: def,
		}
	}

	return Eligibility{CanCheckIn: true, Shift: def}
}

// WindowDescription reports the shift's nominal length, mainly for admin
// listings.
func WindowDescription(def shift.Definition) string {
	minutes, ok := timesheet.ShiftDurationMinutes(def.StartTime, def.EndTime)
	if !ok {
		return fmt.Sprintf("%s-%s", def.StartTime, def.EndTime)
	}
	return fmt.Sprintf("%s-%s (%.1fh)", def.StartTime, def.EndTime, float64(minutes)/60.0)
}
