package performance

import (
	"context"
	"testing"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePerformanceRepo struct {
	stored  map[string]performance.Record
	ratings []performance.RatingSample
	upserts int
}

func newFakePerformanceRepo() *fakePerformanceRepo {
	return &fakePerformanceRepo{stored: make(map[string]performance.Record)}
}

func (f *fakePerformanceRepo) key(employeeID, monthYear string) string {
	return employeeID + "/" + monthYear
}

func (f *fakePerformanceRepo) Upsert(ctx context.Context, record performance.Record) (performance.Record, error) {
	f.stored[f.key(record.EmployeeID, record.MonthYear)] = record
	f.upserts++
	return record, nil
}

func (f *fakePerformanceRepo) GetByEmployeeAndMonth(ctx context.Context, employeeID, monthYear string) (performance.Record, error) {
	rec, ok := f.stored[f.key(employeeID, monthYear)]
	if !ok {
		return performance.Record{}, performance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakePerformanceRepo) ListRatings(ctx context.Context, employeeID string, from, to time.Time) ([]performance.RatingSample, error) {
	return f.ratings, nil
}

type fakeRecordSource struct {
	records []attendance.Record
}

func (f *fakeRecordSource) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	return record, nil
}
func (f *fakeRecordSource) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrRecordNotFound
}
func (f *fakeRecordSource) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	return attendance.Record{}, attendance.ErrNoOpenRecord
}
func (f *fakeRecordSource) HasRecordForDate(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	return false, nil
}
func (f *fakeRecordSource) Close(ctx context.Context, record attendance.Record, danglingSession *attendance.BreakSession) error {
	return nil
}
func (f *fakeRecordSource) ListClosed(ctx context.Context, filter attendance.ClosedRecordFilter) ([]attendance.Record, error) {
	return nil, nil
}
func (f *fakeRecordSource) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	return f.records, nil
}
func (f *fakeRecordSource) UpdateAccounting(ctx context.Context, recordID string, fields attendance.AccountingFields) error {
	return nil
}
func (f *fakeRecordSource) EndBreak(ctx context.Context, session attendance.BreakSession, totalBreakMinutes int) error {
	return nil
}
func (f *fakeRecordSource) BeginBreak(ctx context.Context, recordID string, state attendance.BreakState) error {
	return nil
}

type fakeDefSource struct {
	defs map[string]shift.Definition
}

func (f *fakeDefSource) Create(ctx context.Context, def shift.Definition) (shift.Definition, error) {
	return def, nil
}
func (f *fakeDefSource) GetByID(ctx context.Context, id string) (shift.Definition, error) {
	def, ok := f.defs[id]
	if !ok {
		return shift.Definition{}, shift.ErrShiftNotFound
	}
	return def, nil
}
func (f *fakeDefSource) List(ctx context.Context) ([]shift.Definition, error)   { return nil, nil }
func (f *fakeDefSource) Update(ctx context.Context, def shift.Definition) error { return nil }
func (f *fakeDefSource) Delete(ctx context.Context, id string) error            { return nil }

func perfectDay(id string, day int) attendance.Record {
	shiftID := "day"
	workDate := time.Date(2026, 3, day, 0, 0, 0, 0, time.UTC)
	checkIn := workDate.Add(9 * time.Hour)
	checkOut := checkIn.Add(8 * time.Hour)
	return attendance.Record{
		ID:                id,
		EmployeeID:        "emp-1",
		WorkDate:          workDate,
		ShiftID:           &shiftID,
		CheckIn:           checkIn,
		CheckOut:          &checkOut,
		RegularHours:      7,
		TotalBreakMinutes: 30,
		Status:            attendance.StatusClosed,
	}
}

func newTestService(records []attendance.Record, ratings []performance.RatingSample) (performance.Service, *fakePerformanceRepo) {
	perfRepo := newFakePerformanceRepo()
	perfRepo.ratings = ratings
	recordSource := &fakeRecordSource{records: records}
	defSource := &fakeDefSource{defs: map[string]shift.Definition{
		"day": {ID: "day", Name: "Morning", Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	}}
	clock := func() time.Time { return time.Date(2026, 4, 1, 8, 0, 0, 0, time.UTC) }
	return NewService(perfRepo, recordSource, defSource, clock), perfRepo
}

func TestRecompute_EmptyMonthDefaults(t *testing.T) {
	t.Parallel()

	svc, repo := newTestService(nil, nil)

	resp, err := svc.Recompute(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, 0, resp.WorkingDays)
	assert.Equal(t, 75.0, resp.AveragePerformanceScore)
	assert.Equal(t, 100.0, resp.PunctualityPercentage)
	assert.Equal(t, performance.StatusGood, resp.PerformanceStatus)
	assert.Equal(t, 1, repo.upserts)
}

func TestRecompute_PerfectMonth(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{perfectDay("r1", 2), perfectDay("r2", 3), perfectDay("r3", 4)}
	svc, _ := newTestService(records, nil)

	resp, err := svc.Recompute(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, 3, resp.WorkingDays)
	assert.Equal(t, 21.0, resp.TotalRegularHours)
	assert.Equal(t, 90, resp.TotalBreakMinutes)
	assert.InDelta(t, 90.0, resp.AveragePerformanceScore, 0.01)
	assert.Equal(t, 100.0, resp.PunctualityPercentage)
	assert.Equal(t, performance.StatusExcellent, resp.PerformanceStatus)
}

func TestRecompute_DelaysDragStatusDown(t *testing.T) {
	t.Parallel()

	late := perfectDay("r1", 2)
	late.RegularHours = 5
	late.DelayMinutes = 120

	svc, _ := newTestService([]attendance.Record{late}, nil)

	resp, err := svc.Recompute(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, 0.0, resp.PunctualityPercentage)
	assert.NotEqual(t, performance.StatusExcellent, resp.PerformanceStatus)
	assert.NotEqual(t, performance.StatusGood, resp.PerformanceStatus)
}

func TestRecompute_RatingBonusApplied(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{perfectDay("r1", 2)}
	ratings := []performance.RatingSample{{Source: "manager", Score: 5.0}}
	svc, _ := newTestService(records, ratings)

	resp, err := svc.Recompute(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, 5.0, resp.AverageRating)
	assert.Equal(t, 15.0, resp.RatingBonusPoints)
	// Base 90 plus the evenly distributed 15 * 0.12 share.
	assert.InDelta(t, 91.8, resp.AveragePerformanceScore, 0.01)
}

func TestRecompute_SkipsOpenAndShiftlessRecords(t *testing.T) {
	t.Parallel()

	open := perfectDay("r-open", 2)
	open.CheckOut = nil

	noShift := perfectDay("r-noshift", 3)
	noShift.ShiftID = nil

	missingShift := perfectDay("r-missing", 4)
	unknown := "unknown"
	missingShift.ShiftID = &unknown

	counted := perfectDay("r-counted", 5)

	svc, _ := newTestService([]attendance.Record{open, noShift, missingShift, counted}, nil)

	resp, err := svc.Recompute(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, 1, resp.WorkingDays)
}

func TestRecompute_Idempotent(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{perfectDay("r1", 2)}
	svc, _ := newTestService(records, nil)
	ctx := context.Background()

	first, err := svc.Recompute(ctx, "emp-1", "2026-03")
	require.NoError(t, err)
	second, err := svc.Recompute(ctx, "emp-1", "2026-03")
	require.NoError(t, err)

	assert.Equal(t, first.AveragePerformanceScore, second.AveragePerformanceScore)
	assert.Equal(t, first.PerformanceStatus, second.PerformanceStatus)
}

func TestGetMonthly_ComputesWhenMissing(t *testing.T) {
	t.Parallel()

	records := []attendance.Record{perfectDay("r1", 2)}
	svc, repo := newTestService(records, nil)

	resp, err := svc.GetMonthly(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1, resp.WorkingDays)
	assert.Equal(t, 1, repo.upserts)

	// Second read serves the stored rollup without recomputing.
	_, err = svc.GetMonthly(context.Background(), "emp-1", "2026-03")
	require.NoError(t, err)
	assert.Equal(t, 1, repo.upserts)
}

func TestGetMonthly_InvalidMonth(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(nil, nil)

	_, err := svc.GetMonthly(context.Background(), "emp-1", "March 2026")
	assert.ErrorIs(t, err, performance.ErrInvalidMonth)

	_, err = svc.Recompute(context.Background(), "emp-1", "")
	assert.ErrorIs(t, err, performance.ErrInvalidMonth)
}
