package timesheet

import (
	"testing"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04", value)
	if err != nil {
		t.Fatalf("bad test time %q: %v", value, err)
	}
	return parsed
}

func TestShiftDurationMinutes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		start string
		end   string
		want  int
		ok    bool
	}{
		{"same day", "09:00", "17:00", 480, true},
		{"overnight", "22:00", "06:00", 480, true},
		{"overnight late start", "23:30", "04:30", 300, true},
		{"zero length", "09:00", "09:00", 0, true},
		{"bad start", "9am", "17:00", 0, false},
		{"bad end", "09:00", "", 0, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ShiftDurationMinutes(c.start, c.end)
			assert.Equal(t, c.ok, ok)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestStandardHours(t *testing.T) {
	t.Parallel()

	day := shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"}
	hours, fallback := StandardHours(day)
	assert.Equal(t, 7.0, hours)
	assert.False(t, fallback)

	night := shift.Definition{Category: shift.CategoryNight, StartTime: "22:00", EndTime: "06:00"}
	hours, fallback = StandardHours(night)
	assert.Equal(t, 8.0, hours)
	assert.False(t, fallback)

	custom := shift.Definition{Category: shift.CategoryCustom, StartTime: "10:00", EndTime: "16:30"}
	hours, fallback = StandardHours(custom)
	assert.Equal(t, 6.5, hours)
	assert.False(t, fallback)

	overnightCustom := shift.Definition{Category: shift.CategoryCustom, StartTime: "23:00", EndTime: "05:00"}
	hours, fallback = StandardHours(overnightCustom)
	assert.Equal(t, 6.0, hours)
	assert.False(t, fallback)

	broken := shift.Definition{Category: shift.CategoryCustom, StartTime: "late", EndTime: "later"}
	hours, fallback = StandardHours(broken)
	assert.Equal(t, 8.0, hours)
	assert.True(t, fallback)
}

func TestCompute_FullDayShift(t *testing.T) {
	t.Parallel()

	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 09:00"),
		CheckOut:          mustTime(t, "2026-03-02 17:00"),
		TotalBreakMinutes: 60,
		Shift:             shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Equal(t, 7.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 0.0, res.DelayMinutes)
	assert.Equal(t, 0.0, res.EarlyCheckoutPenalty)
	assert.Equal(t, 7.0, res.ActualWorkHours)
	assert.False(t, res.UsedFallbackStandard)
}

func TestCompute_OvertimeBeyondStandard(t *testing.T) {
	t.Parallel()

	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 09:00"),
		CheckOut:          mustTime(t, "2026-03-02 19:00"),
		TotalBreakMinutes: 60,
		Shift:             shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Equal(t, 7.0, res.RegularHours)
	assert.Equal(t, 2.0, res.OvertimeHours)
	assert.Equal(t, 0.0, res.DelayMinutes)
}

func TestCompute_UnderHours(t *testing.T) {
	t.Parallel()

	// Worked 6 of the 7 standard hours: one hour short.
	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 09:00"),
		CheckOut:          mustTime(t, "2026-03-02 15:00"),
		TotalBreakMinutes: 0,
		Shift:             shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Equal(t, 6.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 60.0, res.DelayMinutes)
	assert.Equal(t, 1.0, res.EarlyCheckoutPenalty)
}

func TestCompute_OvernightShift(t *testing.T) {
	t.Parallel()

	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 22:00"),
		CheckOut:          mustTime(t, "2026-03-03 06:00"),
		TotalBreakMinutes: 0,
		Shift:             shift.Definition{Category: shift.CategoryNight, StartTime: "22:00", EndTime: "06:00"},
	})

	assert.Equal(t, 8.0, res.RegularHours)
	assert.Equal(t, 0.0, res.OvertimeHours)
	assert.Equal(t, 0.0, res.DelayMinutes)
}

func TestCompute_AllTimeOvertime(t *testing.T) {
	t.Parallel()

	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-07 10:00"),
		CheckOut:          mustTime(t, "2026-03-07 13:30"),
		TotalBreakMinutes: 0,
		Shift: shift.Definition{
			Category:        shift.CategoryCustom,
			StartTime:       "10:00",
			EndTime:         "18:00",
			AllTimeOvertime: true,
		},
	})

	// Every worked minute is overtime; no regular hours and never a delay.
	assert.Equal(t, 0.0, res.RegularHours)
	assert.Equal(t, 3.5, res.OvertimeHours)
	assert.Equal(t, 0.0, res.DelayMinutes)
	assert.Equal(t, 0.0, res.EarlyCheckoutPenalty)
}

func TestCompute_BreaksExceedPresence(t *testing.T) {
	t.Parallel()

	// More recorded break than presence clamps work time to zero rather than
	// going negative.
	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 09:00"),
		CheckOut:          mustTime(t, "2026-03-02 09:30"),
		TotalBreakMinutes: 60,
		Shift:             shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	})

	assert.Equal(t, 0.0, res.ActualWorkHours)
	assert.Equal(t, 0.0, res.RegularHours)
	assert.Equal(t, 420.0, res.DelayMinutes)
	assert.Equal(t, 7.0, res.EarlyCheckoutPenalty)
}

func TestCompute_FallbackStandardFlagged(t *testing.T) {
	t.Parallel()

	res := Compute(Input{
		CheckIn:           mustTime(t, "2026-03-02 09:00"),
		CheckOut:          mustTime(t, "2026-03-02 17:00"),
		TotalBreakMinutes: 0,
		Shift:             shift.Definition{Category: shift.CategoryCustom, StartTime: "bogus", EndTime: "17:00"},
	})

	assert.True(t, res.UsedFallbackStandard)
	assert.Equal(t, 8.0, res.StandardHours)
	assert.Equal(t, 8.0, res.RegularHours)
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()

	in := Input{
		CheckIn:           mustTime(t, "2026-03-02 09:13"),
		CheckOut:          mustTime(t, "2026-03-02 18:47"),
		TotalBreakMinutes: 42,
		Shift:             shift.Definition{Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	}

	first := Compute(in)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Compute(in))
	}
}

func TestFieldDelta_Differs(t *testing.T) {
	t.Parallel()

	base := FieldDelta{RegularHours: 7, OvertimeHours: 1, DelayMinutes: 0, EarlyCheckoutPenalty: 0}

	assert.False(t, base.Differs(base))
	assert.False(t, base.Differs(FieldDelta{RegularHours: 7.005, OvertimeHours: 1, DelayMinutes: 0, EarlyCheckoutPenalty: 0}))
	assert.True(t, base.Differs(FieldDelta{RegularHours: 7.02, OvertimeHours: 1, DelayMinutes: 0, EarlyCheckoutPenalty: 0}))
	assert.True(t, base.Differs(FieldDelta{RegularHours: 7, OvertimeHours: 0, DelayMinutes: 0, EarlyCheckoutPenalty: 0}))
}
