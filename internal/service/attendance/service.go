package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	shiftService "github.com/shiftwise-hq/worktime-backend-go/internal/service/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/timesheet"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/workday"
)

// Clock supplies the current instant; injected so tests can drive time.
type Clock func() time.Time

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	shiftDefRepo   shift.DefinitionRepository
	shiftSvc       shiftService.Service
	resolver       *workday.Resolver
	now            Clock
}

func NewService(
	attendanceRepo attendance.Repository,
	shiftDefRepo shift.DefinitionRepository,
	shiftSvc shiftService.Service,
	resolver *workday.Resolver,
	clock Clock,
) attendance.Service {
	if clock == nil {
		clock = time.Now
	}
	return &ServiceImpl{
		attendanceRepo: attendanceRepo,
		shiftDefRepo:   shiftDefRepo,
		shiftSvc:       shiftSvc,
		resolver:       resolver,
		now:            clock,
	}
}

func employeeIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	employeeID, ok := claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", fmt.Errorf("employee_id claim is missing or invalid")
	}
	return employeeID, nil
}

// CheckEligibility implements attendance.Service.
func (s *ServiceImpl) CheckEligibility(ctx context.Context) (attendance.EligibilityResult, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.EligibilityResult{}, err
	}

	now := s.now()
	workDate := s.resolver.WorkDate(now)

	assignment, err := s.shiftSvc.GetAssignment(ctx, employeeID, workDate)
	if err != nil {
		return attendance.EligibilityResult{}, err
	}

	verdict := shiftService.CheckEligibility(assignment, now)

	result := attendance.EligibilityResult{
		CanCheckIn: verdict.CanCheckIn,
		Reason:     verdict.Reason,
		WorkDate:   workDate.Format("2006-01-02"),
	}
	if verdict.Shift != nil {
		resp := shiftService.MapShiftToResponse(*verdict.Shift)
		result.Shift = &resp
	}
	return result, nil
}

// CheckIn implements attendance.Service.
func (s *ServiceImpl) CheckIn(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	workDate := s.resolver.WorkDate(now)

	hasRecord, err := s.attendanceRepo.HasRecordForDate(ctx, employeeID, workDate)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to check existing record: %w", err)
	}
	if hasRecord {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedIn
	}

	assignment, err := s.shiftSvc.GetAssignment(ctx, employeeID, workDate)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	verdict := shiftService.CheckEligibility(assignment, now)
	if !verdict.CanCheckIn {
		return attendance.RecordResponse{}, fmt.Errorf("%w: %s", shift.ErrOutsideShiftWindow, verdict.Reason)
	}

	record := attendance.Record{
		ID:         uuid.NewString(),
		EmployeeID: employeeID,
		WorkDate:   workDate,
		ShiftID:    assignment.ShiftID,
		CheckIn:    now,
		Break:      attendance.Working(),
		Status:     attendance.StatusOpen,
	}

	created, err := s.attendanceRepo.Create(ctx, record)
	if err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return MapRecordToResponse(created), nil
}

// CheckOut implements attendance.Service. A break still open at check-out is
// closed at the check-out instant and the record is flagged for audit instead
// of silently dropping the interval.
func (s *ServiceImpl) CheckOut(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	workDate := s.resolver.WorkDate(now)

	record, err := s.attendanceRepo.GetOpenByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenRecord) {
			return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	status := attendance.StatusClosed

	var danglingSession *attendance.BreakSession
	if session, dangling := record.CloseDanglingBreak(now); dangling {
		session.ID = uuid.NewString()
		status = attendance.StatusClosedAudit
		danglingSession = &session
		slog.Warn("Check-out with open break session; closing at check-out time",
			"record_id", record.ID,
			"employee_id", employeeID,
			"break_started", session.StartTime,
			"break_minutes", session.DurationMinutes)
	}

	record.CheckOut = &now
	record.Status = status

	if def := s.shiftDefinition(ctx, record.ID, record.ShiftID); def != nil {
		result := timesheet.Compute(timesheet.Input{
			CheckIn:           record.CheckIn,
			CheckOut:          now,
			TotalBreakMinutes: record.TotalBreakMinutes,
			Shift:             *def,
		})
		if result.UsedFallbackStandard {
			slog.Warn("Shift start/end unparsable; using 8-hour standard",
				"shift_id", def.ID, "shift_name", def.Name, "record_id", record.ID)
		}
		record.RegularHours = result.RegularHours
		record.OvertimeHours = result.OvertimeHours
		record.DelayMinutes = result.DelayMinutes
		record.EarlyCheckoutPenalty = result.EarlyCheckoutPenalty
	}

	// The dangling session, if any, is inserted in the same transaction as
	// the close, so a failed close can be retried without duplicating it.
	if err := s.attendanceRepo.Close(ctx, record, danglingSession); err != nil {
		return attendance.RecordResponse{}, fmt.Errorf("failed to close attendance record: %w", err)
	}

	return MapRecordToResponse(record), nil
}

// shiftDefinition loads the record's shift, returning nil when the record has
// none or the definition has since been deleted (accounting then stays zero
// until recalculation or correction).
func (s *ServiceImpl) shiftDefinition(ctx context.Context, recordID string, shiftID *string) *shift.Definition {
	if shiftID == nil {
		return nil
	}
	def, err := s.shiftDefRepo.GetByID(ctx, *shiftID)
	if err != nil {
		slog.Warn("Shift definition missing at check-out; skipping accounting pass",
			"record_id", recordID, "shift_id", *shiftID, "error", err)
		return nil
	}
	return &def
}

// StartBreak implements attendance.Service.
func (s *ServiceImpl) StartBreak(ctx context.Context, req attendance.StartBreakRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	workDate := s.resolver.WorkDate(now)

	record, err := s.attendanceRepo.GetOpenByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenRecord) {
			return attendance.RecordResponse{}, attendance.ErrNoOpenRecord
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	if err := record.StartBreak(now, req.Reason); err != nil {
		return attendance.RecordResponse{}, err
	}

	// Conditional write: only lands if the stored record is still Working,
	// so two racing StartBreak calls cannot both succeed.
	if err := s.attendanceRepo.BeginBreak(ctx, record.ID, record.Break); err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordToResponse(record), nil
}

// StopBreak implements attendance.Service.
func (s *ServiceImpl) StopBreak(ctx context.Context) (attendance.RecordResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	now := s.now()
	workDate := s.resolver.WorkDate(now)

	record, err := s.attendanceRepo.GetOpenByEmployeeAndDate(ctx, employeeID, workDate)
	if err != nil {
		if errors.Is(err, attendance.ErrNoOpenRecord) {
			return attendance.RecordResponse{}, attendance.ErrNoOpenRecord
		}
		return attendance.RecordResponse{}, fmt.Errorf("failed to get open record: %w", err)
	}

	session, err := record.StopBreak(now)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	session.ID = uuid.NewString()

	// State clear, session insert and total update commit together; a failed
	// stop leaves the break open rather than dropping the interval.
	if err := s.attendanceRepo.EndBreak(ctx, session, record.TotalBreakMinutes); err != nil {
		return attendance.RecordResponse{}, err
	}

	return MapRecordToResponse(record), nil
}

// GetMyRecords implements attendance.Service.
func (s *ServiceImpl) GetMyRecords(ctx context.Context, filter attendance.MyRecordsFilter) (attendance.ListRecordsResponse, error) {
	employeeID, err := employeeIDFromContext(ctx)
	if err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	from, to := rangeFromFilter(filter.StartDate, filter.EndDate, s.now())

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list my records: %w", err)
	}

	return paginate(records, filter.Status, filter.Page, filter.Limit), nil
}

// ListRecords implements attendance.Service.
func (s *ServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordsFilter) (attendance.ListRecordsResponse, error) {
	from, to := rangeFromFilter(filter.StartDate, filter.EndDate, s.now())

	var records []attendance.Record
	var err error
	if filter.EmployeeID != nil && *filter.EmployeeID != "" {
		records, err = s.attendanceRepo.ListByEmployeeAndRange(ctx, *filter.EmployeeID, from, to)
	} else {
		records, err = s.attendanceRepo.ListClosed(ctx, attendance.ClosedRecordFilter{From: &from, To: &to})
	}
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list records: %w", err)
	}

	return paginate(records, filter.Status, filter.Page, filter.Limit), nil
}

func rangeFromFilter(startDate, endDate *string, now time.Time) (time.Time, time.Time) {
	// Default to the current month
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0).Add(-time.Nanosecond)

	if startDate != nil {
		if parsed, err := time.Parse("2006-01-02", *startDate); err == nil {
			from = parsed
		}
	}
	if endDate != nil {
		if parsed, err := time.Parse("2006-01-02", *endDate); err == nil {
			to = parsed.AddDate(0, 0, 1).Add(-time.Nanosecond)
		}
	}
	return from, to
}

func paginate(records []attendance.Record, status *string, page, limit int) attendance.ListRecordsResponse {
	if status != nil && *status != "" {
		filtered := records[:0]
		for _, rec := range records {
			if rec.Status == *status {
				filtered = append(filtered, rec)
			}
		}
		records = filtered
	}

	if limit <= 0 {
		limit = 20
	}
	if page <= 0 {
		page = 1
	}

	total := int64(len(records))
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	start := (page - 1) * limit
	if start > len(records) {
		start = len(records)
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}

	responses := make([]attendance.RecordResponse, 0, end-start)
	for _, rec := range records[start:end] {
		responses = append(responses, MapRecordToResponse(rec))
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		Records:    responses,
	}
}

// timePtrToString safely converts a *time.Time to a string.
func timePtrToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	format := t.Format("2006-01-02 15:04:05")
	return &format
}

// MapRecordToResponse converts a Record entity to RecordResponse
func MapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                   rec.ID,
		EmployeeID:           rec.EmployeeID,
		EmployeeName:         rec.EmployeeName,
		WorkDate:             rec.WorkDate.Format("2006-01-02"),
		CheckInTime:          rec.CheckIn.Format("2006-01-02 15:04:05"),
		CheckOutTime:         timePtrToString(rec.CheckOut),
		RegularHours:         rec.RegularHours,
		OvertimeHours:        rec.OvertimeHours,
		DelayMinutes:         rec.DelayMinutes,
		EarlyCheckoutPenalty: rec.EarlyCheckoutPenalty,
		TotalBreakMinutes:    rec.TotalBreakMinutes,
		IsOnBreak:            rec.Break.OnBreak,
		Status:               rec.Status,
		UpdatedAt:            rec.UpdatedAt.Format("2006-01-02 15:04:05"),
	}

	if rec.Break.OnBreak {
		since := rec.Break.Since
		resp.BreakStartTime = timePtrToString(&since)
		reason := rec.Break.Reason
		resp.BreakReason = &reason
	}

	for _, session := range rec.Sessions {
		resp.BreakSessions = append(resp.BreakSessions, attendance.BreakSessionResponse{
			ID:              session.ID,
			StartTime:       session.StartTime.Format("2006-01-02 15:04:05"),
			EndTime:         session.EndTime.Format("2006-01-02 15:04:05"),
			DurationMinutes: session.DurationMinutes,
			Reason:          session.Reason,
		})
	}

	return resp
}
