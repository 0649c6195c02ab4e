package workday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResolver(t *testing.T) {
	t.Parallel()

	_, err := NewResolver("09:00", "04:30")
	assert.NoError(t, err)

	_, err = NewResolver("nine", "04:30")
	assert.Error(t, err)

	_, err = NewResolver("09:00", "late")
	assert.Error(t, err)

	// Rollover at or after the daily start would make windows overlap.
	_, err = NewResolver("09:00", "09:00")
	assert.Error(t, err)
	_, err = NewResolver("09:00", "10:00")
	assert.Error(t, err)
}

func TestResolve_DaytimeInstant(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("09:00", "04:30")
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 14, 0, 0, 0, time.UTC)
	b := r.Resolve(now)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, time.Date(2026, 3, 3, 4, 30, 0, 0, time.UTC), b.End)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), b.WorkDate)
}

func TestResolve_EarlyMorningBelongsToPreviousDate(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("09:00", "04:30")
	require.NoError(t, err)

	// 02:00 is before today's 09:00 opening, so it belongs to yesterday's
	// work-date. This is how an overnight check-out stays on the shift's date.
	now := time.Date(2026, 3, 3, 2, 0, 0, 0, time.UTC)
	b := r.Resolve(now)

	assert.Equal(t, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), b.Start)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), b.WorkDate)
}

func TestResolve_ExactlyAtStart(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("09:00", "04:30")
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	b := r.Resolve(now)

	assert.Equal(t, now, b.Start)
	assert.Equal(t, time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), b.WorkDate)
}

func TestResolve_CrossesMonthBoundary(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("09:00", "04:30")
	require.NoError(t, err)

	now := time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC)
	b := r.Resolve(now)

	assert.Equal(t, time.Date(2026, 3, 31, 0, 0, 0, 0, time.UTC), b.WorkDate)
}

func TestWorkDate_MatchesResolve(t *testing.T) {
	t.Parallel()

	r, err := NewResolver("09:00", "04:30")
	require.NoError(t, err)

	now := time.Date(2026, 3, 2, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, r.Resolve(now).WorkDate, r.WorkDate(now))
}
