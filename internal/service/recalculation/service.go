package recalculation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/timesheet"
)

// ErrRunInProgress is returned when a recalculation is already in flight in
// this process. The guard is advisory: overlapping runs from other processes
// are tolerated because the recompute is deterministic and the write is
// change-detected.
var ErrRunInProgress = errors.New("a recalculation run is already in progress")

// Result summarizes one batch run.
type Result struct {
	RecordsProcessed int `json:"records_processed"`
	RecordsUpdated   int `json:"records_updated"`
	Errors           int `json:"errors"`
}

// Service re-derives stored accounting fields for closed attendance records,
// writing back only rows whose recomputed values actually changed.
type Service struct {
	attendanceRepo attendance.Repository
	shiftDefRepo   shift.DefinitionRepository
	windowDays     int
	inFlight       atomic.Bool
	now            func() time.Time
}

func NewService(
	attendanceRepo attendance.Repository,
	shiftDefRepo shift.DefinitionRepository,
	windowDays int,
	clock func() time.Time,
) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		attendanceRepo: attendanceRepo,
		shiftDefRepo:   shiftDefRepo,
		windowDays:     windowDays,
		now:            clock,
	}
}

// RunWindowed recalculates records inside the recent date window. This is the
// periodic job entry point.
func (s *Service) RunWindowed(ctx context.Context) (Result, error) {
	from := s.now().AddDate(0, 0, -s.windowDays)
	return s.run(ctx, attendance.ClosedRecordFilter{From: &from})
}

// RunFull recalculates every closed record. This is the manual trigger.
func (s *Service) RunFull(ctx context.Context) (Result, error) {
	return s.run(ctx, attendance.ClosedRecordFilter{})
}

func (s *Service) run(ctx context.Context, filter attendance.ClosedRecordFilter) (Result, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrRunInProgress
	}
	defer s.inFlight.Store(false)

	started := s.now()

	records, err := s.attendanceRepo.ListClosed(ctx, filter)
	if err != nil {
		// Infrastructure failure: nothing could be read, abort the run.
		return Result{}, fmt.Errorf("failed to list closed records: %w", err)
	}

	var result Result
	shiftCache := make(map[string]*shift.Definition)

	for _, record := range records {
		result.RecordsProcessed++

		updated, err := s.recalculateRecord(ctx, record, shiftCache)
		if err != nil {
			result.Errors++
			slog.Warn("Recalculation skipped record",
				"record_id", record.ID,
				"employee_id", record.EmployeeID,
				"error", err)
			continue
		}
		if updated {
			result.RecordsUpdated++
		}
	}

	slog.Info("Recalculation run completed",
		"processed", result.RecordsProcessed,
		"updated", result.RecordsUpdated,
		"errors", result.Errors,
		"duration", time.Since(started))

	return result, nil
}

// recalculateRecord recomputes one record and writes back only when the
// derived fields drifted beyond tolerance. Per-record failures are reported
// to the caller and never abort the batch.
func (s *Service) recalculateRecord(ctx context.Context, record attendance.Record, cache map[string]*shift.Definition) (bool, error) {
	if record.CheckOut == nil {
		return false, fmt.Errorf("record is not closed")
	}
	if record.ShiftID == nil {
		return false, fmt.Errorf("record has no shift reference")
	}

	def, err := s.cachedShift(ctx, *record.ShiftID, cache)
	if err != nil {
		return false, err
	}

	result := timesheet.Compute(timesheet.Input{
		CheckIn:           record.CheckIn,
		CheckOut:          *record.CheckOut,
		TotalBreakMinutes: record.TotalBreakMinutes,
		Shift:             *def,
	})
	if result.UsedFallbackStandard {
		slog.Warn("Shift start/end unparsable during recalculation; using 8-hour standard",
			"shift_id", def.ID, "shift_name", def.Name, "record_id", record.ID)
	}

	stored := timesheet.FieldDelta{
		RegularHours:         record.RegularHours,
		OvertimeHours:        record.OvertimeHours,
		DelayMinutes:         record.DelayMinutes,
		EarlyCheckoutPenalty: record.EarlyCheckoutPenalty,
	}

	if !result.Fields().Differs(stored) {
		return false, nil
	}

	err = s.attendanceRepo.UpdateAccounting(ctx, record.ID, attendance.AccountingFields{
		RegularHours:         result.RegularHours,
		OvertimeHours:        result.OvertimeHours,
		DelayMinutes:         result.DelayMinutes,
		EarlyCheckoutPenalty: result.EarlyCheckoutPenalty,
	})
	if err != nil {
		return false, fmt.Errorf("failed to write accounting fields: %w", err)
	}
	return true, nil
}

func (s *Service) cachedShift(ctx context.Context, shiftID string, cache map[string]*shift.Definition) (*shift.Definition, error) {
	if def, ok := cache[shiftID]; ok {
		if def == nil {
			return nil, shift.ErrShiftNotFound
		}
		return def, nil
	}

	def, err := s.shiftDefRepo.GetByID(ctx, shiftID)
	if err != nil {
		if errors.Is(err, shift.ErrShiftNotFound) {
			cache[shiftID] = nil
		}
		return nil, err
	}
	cache[shiftID] = &def
	return &def, nil
}
