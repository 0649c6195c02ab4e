package attendance

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRecord() Record {
	return Record{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		WorkDate:   time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC),
		CheckIn:    time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC),
		Status:     StatusOpen,
	}
}

func TestStartBreak(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	now := rec.CheckIn.Add(2 * time.Hour)

	err := rec.StartBreak(now, "lunch")
	require.NoError(t, err)
	assert.True(t, rec.Break.OnBreak)
	assert.Equal(t, now, rec.Break.Since)
	assert.Equal(t, "lunch", rec.Break.Reason)
}

func TestStartBreak_ReasonValidation(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	now := rec.CheckIn.Add(time.Hour)

	assert.ErrorIs(t, rec.StartBreak(now, ""), ErrBreakReasonRequired)
	assert.ErrorIs(t, rec.StartBreak(now, "   "), ErrBreakReasonRequired)
	assert.ErrorIs(t, rec.StartBreak(now, strings.Repeat("x", MaxBreakReasonLength+1)), ErrBreakReasonTooLong)

	// Exactly at the limit is allowed.
	assert.NoError(t, rec.StartBreak(now, strings.Repeat("x", MaxBreakReasonLength)))
}

func TestStartBreak_IllegalStates(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	now := rec.CheckIn.Add(time.Hour)
	require.NoError(t, rec.StartBreak(now, "coffee"))

	// Second start while on break.
	assert.ErrorIs(t, rec.StartBreak(now.Add(time.Minute), "again"), ErrAlreadyOnBreak)

	closed := openRecord()
	checkOut := closed.CheckIn.Add(8 * time.Hour)
	closed.CheckOut = &checkOut
	assert.ErrorIs(t, closed.StartBreak(now, "late break"), ErrAlreadyCheckedOut)
}

func TestStopBreak(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	start := rec.CheckIn.Add(3 * time.Hour)
	require.NoError(t, rec.StartBreak(start, "lunch"))

	session, err := rec.StopBreak(start.Add(25*time.Minute + 40*time.Second))
	require.NoError(t, err)

	// Partial minutes are floored.
	assert.Equal(t, 25, session.DurationMinutes)
	assert.Equal(t, "lunch", session.Reason)
	assert.Equal(t, start, session.StartTime)

	assert.False(t, rec.Break.OnBreak)
	assert.Equal(t, 25, rec.TotalBreakMinutes)
	assert.Len(t, rec.Sessions, 1)
}

func TestStopBreak_NotOnBreak(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	_, err := rec.StopBreak(rec.CheckIn.Add(time.Hour))
	assert.ErrorIs(t, err, ErrNotOnBreak)
}

func TestBreakMinutesAccrue(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	at := rec.CheckIn

	require.NoError(t, rec.StartBreak(at.Add(2*time.Hour), "coffee"))
	_, err := rec.StopBreak(at.Add(2*time.Hour + 10*time.Minute))
	require.NoError(t, err)

	require.NoError(t, rec.StartBreak(at.Add(5*time.Hour), "lunch"))
	_, err = rec.StopBreak(at.Add(5*time.Hour + 45*time.Minute))
	require.NoError(t, err)

	assert.Equal(t, 55, rec.TotalBreakMinutes)
	assert.Len(t, rec.Sessions, 2)
}

func TestCloseDanglingBreak(t *testing.T) {
	t.Parallel()

	rec := openRecord()
	require.NoError(t, rec.StartBreak(rec.CheckIn.Add(6*time.Hour), "walk"))

	checkOut := rec.CheckIn.Add(8 * time.Hour)
	session, closed := rec.CloseDanglingBreak(checkOut)

	assert.True(t, closed)
	assert.Equal(t, checkOut, session.EndTime)
	assert.Equal(t, 120, session.DurationMinutes)
	assert.False(t, rec.Break.OnBreak)

	// No open break: nothing to close.
	_, closed = rec.CloseDanglingBreak(checkOut)
	assert.False(t, closed)
}
