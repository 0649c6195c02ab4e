package shift

import (
	"testing"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func dayShift() *shift.Definition {
	return &shift.Definition{
		ID:        "shift-day",
		Name:      "Morning",
		Category:  shift.CategoryDay,
		StartTime: "09:00",
		EndTime:   "17:00",
	}
}

func nightShift() *shift.Definition {
	return &shift.Definition{
		ID:        "shift-night",
		Name:      "Graveyard",
		Category:  shift.CategoryNight,
		StartTime: "22:00",
		EndTime:   "06:00",
	}
}

func assignmentFor(def *shift.Definition, workDate time.Time) *shift.Assignment {
	a := &shift.Assignment{
		ID:         "assignment-1",
		EmployeeID: "emp-1",
		WorkDate:   workDate,
	}
	if def != nil {
		a.ShiftID = &def.ID
		a.Shift = def
	}
	return a
}

func TestCheckEligibility_NoAssignment(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

	verdict := CheckEligibility(nil, now)
	assert.False(t, verdict.CanCheckIn)
	assert.Contains(t, verdict.Reason, "no shift assigned")

	verdict = CheckEligibility(assignmentFor(nil, now), now)
	assert.False(t, verdict.CanCheckIn)
	assert.Contains(t, verdict.Reason, "no shift assigned")
}

func TestCheckEligibility_DayOff(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a := assignmentFor(nil, workDate)
	a.IsDayOff = true

	verdict := CheckEligibility(a, workDate.Add(10*time.Hour))
	assert.False(t, verdict.CanCheckIn)
	assert.Contains(t, verdict.Reason, "day off")
}

func TestCheckEligibility_Window(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a := assignmentFor(dayShift(), workDate)

	cases := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"well before window", workDate.Add(8 * time.Hour), false},
		{"window opens 30m early", workDate.Add(8*time.Hour + 30*time.Minute), true},
		{"mid shift", workDate.Add(13 * time.Hour), true},
		{"just before end", workDate.Add(16*time.Hour + 59*time.Minute), true},
		{"at end", workDate.Add(17 * time.Hour), false},
		{"after end", workDate.Add(20 * time.Hour), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			verdict := CheckEligibility(a, c.now)
			assert.Equal(t, c.want, verdict.CanCheckIn, "reason: %s", verdict.Reason)
		})
	}
}

func TestCheckEligibility_OvernightWindowSpansMidnight(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	a := assignmentFor(nightShift(), workDate)

	// 01:00 the next calendar day is still inside the 22:00-06:00 shift.
	verdict := CheckEligibility(a, time.Date(2026, 3, 3, 1, 0, 0, 0, time.UTC))
	assert.True(t, verdict.CanCheckIn)

	// 07:00 the next day is past the overnight end.
	verdict = CheckEligibility(a, time.Date(2026, 3, 3, 7, 0, 0, 0, time.UTC))
	assert.False(t, verdict.CanCheckIn)
	assert.Contains(t, verdict.Reason, "already ended")
}

func TestCheckEligibility_UnparsableTimes(t *testing.T) {
	t.Parallel()

	def := &shift.Definition{ID: "bad", Name: "Broken", Category: shift.CategoryCustom, StartTime: "morning", EndTime: "evening"}
	workDate := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

	verdict := CheckEligibility(assignmentFor(def, workDate), workDate.Add(10*time.Hour))
	assert.False(t, verdict.CanCheckIn)
	assert.Contains(t, verdict.Reason, "unparsable")
}
