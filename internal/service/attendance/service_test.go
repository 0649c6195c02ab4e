package attendance

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/workday"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo mirrors the transactional contract of the real
// repository: Close and EndBreak either apply all of their writes or none.
type fakeAttendanceRepo struct {
	records  map[string]attendance.Record
	sessions []attendance.BreakSession

	closeErr    error
	endBreakErr error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetOpenByEmployeeAndDate(ctx context.Context, employeeID string, workDate time.Time) (attendance.Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.WorkDate.Equal(workDate) && rec.CheckOut == nil {
			return rec, nil
		}
	}
	return attendance.Record{}, attendance.ErrNoOpenRecord
}

func (f *fakeAttendanceRepo) HasRecordForDate(ctx context.Context, employeeID string, workDate time.Time) (bool, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.WorkDate.Equal(workDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAttendanceRepo) Close(ctx context.Context, record attendance.Record, danglingSession *attendance.BreakSession) error {
	if f.closeErr != nil {
		return f.closeErr
	}
	if danglingSession != nil {
		f.sessions = append(f.sessions, *danglingSession)
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) ListClosed(ctx context.Context, filter attendance.ClosedRecordFilter) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndRange(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) UpdateAccounting(ctx context.Context, recordID string, fields attendance.AccountingFields) error {
	return nil
}

func (f *fakeAttendanceRepo) EndBreak(ctx context.Context, session attendance.BreakSession, totalBreakMinutes int) error {
	if f.endBreakErr != nil {
		return f.endBreakErr
	}
	rec, ok := f.records[session.RecordID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if !rec.Break.OnBreak {
		return attendance.ErrNotOnBreak
	}
	rec.Break = attendance.Working()
	rec.TotalBreakMinutes = totalBreakMinutes
	f.records[session.RecordID] = rec
	f.sessions = append(f.sessions, session)
	return nil
}

func (f *fakeAttendanceRepo) BeginBreak(ctx context.Context, recordID string, state attendance.BreakState) error {
	rec, ok := f.records[recordID]
	if !ok {
		return attendance.ErrRecordNotFound
	}
	if rec.Break.OnBreak {
		return attendance.ErrAlreadyOnBreak
	}
	rec.Break = state
	f.records[recordID] = rec
	return nil
}

type fakeShiftDefRepo struct {
	defs map[string]shift.Definition
}

func (f *fakeShiftDefRepo) Create(ctx context.Context, def shift.Definition) (shift.Definition, error) {
	return def, nil
}

func (f *fakeShiftDefRepo) GetByID(ctx context.Context, id string) (shift.Definition, error) {
	def, ok := f.defs[id]
	if !ok {
		return shift.Definition{}, shift.ErrShiftNotFound
	}
	return def, nil
}

func (f *fakeShiftDefRepo) List(ctx context.Context) ([]shift.Definition, error)   { return nil, nil }
func (f *fakeShiftDefRepo) Update(ctx context.Context, def shift.Definition) error { return nil }
func (f *fakeShiftDefRepo) Delete(ctx context.Context, id string) error            { return nil }

type fakeShiftService struct {
	assignment *shift.Assignment
}

func (f *fakeShiftService) CreateShift(ctx context.Context, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}
func (f *fakeShiftService) ListShifts(ctx context.Context) ([]shift.ShiftResponse, error) {
	return nil, nil
}
func (f *fakeShiftService) UpdateShift(ctx context.Context, id string, req shift.CreateShiftRequest) (shift.ShiftResponse, error) {
	return shift.ShiftResponse{}, nil
}
func (f *fakeShiftService) DeleteShift(ctx context.Context, id string) error { return nil }
func (f *fakeShiftService) AssignShift(ctx context.Context, req shift.AssignShiftRequest) (shift.AssignmentResponse, error) {
	return shift.AssignmentResponse{}, nil
}
func (f *fakeShiftService) GetAssignment(ctx context.Context, employeeID string, workDate time.Time) (*shift.Assignment, error) {
	return f.assignment, nil
}
func (f *fakeShiftService) ListAssignments(ctx context.Context, workDate time.Time) ([]shift.AssignmentResponse, error) {
	return nil, nil
}
func (f *fakeShiftService) UnassignShift(ctx context.Context, assignmentID string) error { return nil }

func authedContext(t *testing.T, employeeID string) context.Context {
	t.Helper()
	tok := jwt.New()
	require.NoError(t, tok.Set("employee_id", employeeID))
	return jwtauth.NewContext(context.Background(), tok, nil)
}

func newServiceAt(t *testing.T, now time.Time) (attendance.Service, *fakeAttendanceRepo) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	defs := &fakeShiftDefRepo{defs: map[string]shift.Definition{
		"day": {ID: "day", Name: "Morning", Category: shift.CategoryDay, StartTime: "09:00", EndTime: "17:00"},
	}}
	resolver, err := workday.NewResolver("09:00", "04:30")
	require.NoError(t, err)
	svc := NewService(repo, defs, &fakeShiftService{}, resolver, func() time.Time { return now })
	return svc, repo
}

func openOnBreakRecord(workDate, breakStart time.Time) attendance.Record {
	shiftID := "day"
	return attendance.Record{
		ID:         "rec-1",
		EmployeeID: "emp-1",
		WorkDate:   workDate,
		ShiftID:    &shiftID,
		CheckIn:    workDate.Add(9 * time.Hour),
		Break:      attendance.OnBreak(breakStart, "lunch"),
		Status:     attendance.StatusOpen,
	}
}

func TestStopBreak_PersistsSessionAndTotal(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := workDate.Add(12*time.Hour + 30*time.Minute)
	svc, repo := newServiceAt(t, now)
	repo.records["rec-1"] = openOnBreakRecord(workDate, workDate.Add(12*time.Hour))

	resp, err := svc.StopBreak(authedContext(t, "emp-1"))
	require.NoError(t, err)

	assert.False(t, resp.IsOnBreak)
	assert.Equal(t, 30, resp.TotalBreakMinutes)

	stored := repo.records["rec-1"]
	assert.False(t, stored.Break.OnBreak)
	assert.Equal(t, 30, stored.TotalBreakMinutes)
	require.Len(t, repo.sessions, 1)
	assert.Equal(t, 30, repo.sessions[0].DurationMinutes)
	assert.Equal(t, "lunch", repo.sessions[0].Reason)
}

func TestStopBreak_FailedWriteLeavesBreakOpen(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := workDate.Add(12*time.Hour + 30*time.Minute)
	svc, repo := newServiceAt(t, now)
	repo.records["rec-1"] = openOnBreakRecord(workDate, workDate.Add(12*time.Hour))
	repo.endBreakErr = errors.New("connection reset")

	_, err := svc.StopBreak(authedContext(t, "emp-1"))
	require.Error(t, err)

	// Nothing landed: the break is still open, the total untouched and no
	// session row exists, so the interval cannot be silently dropped.
	stored := repo.records["rec-1"]
	assert.True(t, stored.Break.OnBreak)
	assert.Equal(t, 0, stored.TotalBreakMinutes)
	assert.Empty(t, repo.sessions)

	// A retry after the fault clears accrues the interval exactly once.
	repo.endBreakErr = nil
	resp, err := svc.StopBreak(authedContext(t, "emp-1"))
	require.NoError(t, err)
	assert.Equal(t, 30, resp.TotalBreakMinutes)
	assert.Len(t, repo.sessions, 1)
}

func TestCheckOut_ClosesDanglingBreakForAudit(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := workDate.Add(17 * time.Hour)
	svc, repo := newServiceAt(t, now)
	repo.records["rec-1"] = openOnBreakRecord(workDate, workDate.Add(16*time.Hour))

	resp, err := svc.CheckOut(authedContext(t, "emp-1"))
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusClosedAudit, resp.Status)
	assert.Equal(t, 60, resp.TotalBreakMinutes)

	stored := repo.records["rec-1"]
	require.NotNil(t, stored.CheckOut)
	assert.Equal(t, attendance.StatusClosedAudit, stored.Status)
	assert.False(t, stored.Break.OnBreak)
	// 8h presence minus the force-closed 60-minute break leaves a full
	// 7-hour day shift with no overtime.
	assert.Equal(t, 7.0, stored.RegularHours)
	assert.Equal(t, 0.0, stored.OvertimeHours)

	require.Len(t, repo.sessions, 1)
	assert.Equal(t, 60, repo.sessions[0].DurationMinutes)
	assert.Equal(t, now, repo.sessions[0].EndTime)
}

func TestCheckOut_CloseFailureRetryKeepsOneSession(t *testing.T) {
	t.Parallel()

	workDate := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	now := workDate.Add(17 * time.Hour)
	svc, repo := newServiceAt(t, now)
	repo.records["rec-1"] = openOnBreakRecord(workDate, workDate.Add(16*time.Hour))
	repo.closeErr = errors.New("connection reset")

	_, err := svc.CheckOut(authedContext(t, "emp-1"))
	require.Error(t, err)

	// The failed close wrote nothing, including the dangling session.
	stored := repo.records["rec-1"]
	assert.Nil(t, stored.CheckOut)
	assert.Empty(t, repo.sessions)

	// Retrying closes the record and the break interval is counted once.
	repo.closeErr = nil
	resp, err := svc.CheckOut(authedContext(t, "emp-1"))
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusClosedAudit, resp.Status)
	assert.Equal(t, 60, resp.TotalBreakMinutes)
	assert.Len(t, repo.sessions, 1)
}

func TestCheckOut_NotCheckedIn(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC)
	svc, _ := newServiceAt(t, now)

	_, err := svc.CheckOut(authedContext(t, "emp-1"))
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}
