package timesheet

import (
	"math"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// Input is everything the accounting computation depends on. CheckOut must be
// set; open records are never recalculated.
type Input struct {
	CheckIn           time.Time
	CheckOut          time.Time
	TotalBreakMinutes int
	Shift             shift.Definition
}

// Result holds the derived accounting fields. UsedFallbackStandard reports
// that the shift's start/end could not be parsed and the 8-hour default was
// substituted, so callers can surface the configuration error instead of
// hiding it in a log line.
type Result struct {
	RegularHours         float64
	OvertimeHours        float64
	DelayMinutes         float64
	EarlyCheckoutPenalty float64
	ActualWorkHours      float64
	StandardHours        float64
	UsedFallbackStandard bool
}

// StandardHours returns the expected paid duration for a shift. Named
// categories use fixed values; custom shifts derive theirs from the start/end
// clock times with overnight wraparound. Unparseable times fall back to 8.0,
// reported through the second return value.
func StandardHours(def shift.Definition) (float64, bool) {
	switch def.Category {
	case shift.CategoryDay:
		return shift.StandardHoursDay, false
	case shift.CategoryNight:
		return shift.StandardHoursNight, false
	}

	minutes, ok := ShiftDurationMinutes(def.StartTime, def.EndTime)
	if !ok {
		return shift.StandardHoursFallback, true
	}
	return float64(minutes) / 60.0, false
}

// ShiftDurationMinutes computes the length of a shift from clock strings.
// An end earlier than the start means the shift crosses midnight:
// duration = (1440 - start) + end.
func ShiftDurationMinutes(startTime, endTime string) (int, bool) {
	startMins, ok := validator.ClockMinutes(startTime)
	if !ok {
		return 0, false
	}
	endMins, ok := validator.ClockMinutes(endTime)
	if !ok {
		return 0, false
	}

	if endMins < startMins {
		return (24*60 - startMins) + endMins, true
	}
	return endMins - startMins, true
}

// Compute turns raw check-in/check-out timestamps plus accrued break minutes
// into the record's accounting fields. Pure function: no I/O, no clock reads;
// identical inputs always produce identical outputs, which is what makes
// periodic recalculation idempotent.
func Compute(in Input) Result {
	totalMinutes := in.CheckOut.Sub(in.CheckIn).Minutes()
	actualWorkMinutes := totalMinutes - float64(in.TotalBreakMinutes)
	if actualWorkMinutes < 0 {
		actualWorkMinutes = 0
	}
	actualWorkHours := actualWorkMinutes / 60.0

	standardHours, usedFallback := StandardHours(in.Shift)

	res := Result{
		ActualWorkHours:      round2(actualWorkHours),
		StandardHours:        standardHours,
		UsedFallbackStandard: usedFallback,
	}

	if in.Shift.AllTimeOvertime {
		res.OvertimeHours = round2(actualWorkHours)
		return res
	}

	res.RegularHours = round2(math.Min(actualWorkHours, standardHours))
	res.OvertimeHours = round2(math.Max(0, actualWorkHours-standardHours))

	if actualWorkHours < standardHours {
		res.DelayMinutes = round2((standardHours - actualWorkHours) * 60)
		res.EarlyCheckoutPenalty = round2(standardHours - actualWorkHours)
	}

	return res
}

// Fields converts a result to the repository write-back shape.
func (r Result) Fields() FieldDelta {
	return FieldDelta{
		RegularHours:         r.RegularHours,
		OvertimeHours:        r.OvertimeHours,
		DelayMinutes:         r.DelayMinutes,
		EarlyCheckoutPenalty: r.EarlyCheckoutPenalty,
	}
}

// FieldDelta is the stored accounting tuple, used for change detection.
type FieldDelta struct {
	RegularHours         float64
	OvertimeHours        float64
	DelayMinutes         float64
	EarlyCheckoutPenalty float64
}

// Tolerance under which stored and recomputed values are considered equal, so
// recalculation only rewrites rows that actually changed.
const Tolerance = 0.01

// Differs reports whether any component of the two tuples diverges beyond
// Tolerance.
func (d FieldDelta) Differs(other FieldDelta) bool {
	return math.Abs(d.RegularHours-other.RegularHours) > Tolerance ||
		math.Abs(d.OvertimeHours-other.OvertimeHours) > Tolerance ||
		math.Abs(d.DelayMinutes-other.DelayMinutes) > Tolerance ||
		math.Abs(d.EarlyCheckoutPenalty-other.EarlyCheckoutPenalty) > Tolerance
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
