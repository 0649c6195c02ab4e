package performance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
)

// ServiceImpl implements performance.Service: it folds a month of closed
// attendance records plus external rating samples into one stored rollup.
type ServiceImpl struct {
	performanceRepo performance.Repository
	attendanceRepo  attendance.Repository
	shiftDefRepo    shift.DefinitionRepository
	now             func() time.Time
}

func NewService(
	performanceRepo performance.Repository,
	attendanceRepo attendance.Repository,
	shiftDefRepo shift.DefinitionRepository,
	clock func() time.Time,
) performance.Service {
	if clock == nil {
		clock = time.Now
	}
	return &ServiceImpl{
		performanceRepo: performanceRepo,
		attendanceRepo:  attendanceRepo,
		shiftDefRepo:    shiftDefRepo,
		now:             clock,
	}
}

// GetMonthly implements performance.Service. Reads the stored rollup;
// computes and stores one when the month has never been scored.
func (s *ServiceImpl) GetMonthly(ctx context.Context, employeeID, monthYear string) (performance.RecordResponse, error) {
	if err := performance.ValidateMonth(monthYear); err != nil {
		return performance.RecordResponse{}, err
	}

	record, err := s.performanceRepo.GetByEmployeeAndMonth(ctx, employeeID, monthYear)
	if err != nil {
		if errors.Is(err, performance.ErrRecordNotFound) {
			return s.Recompute(ctx, employeeID, monthYear)
		}
		return performance.RecordResponse{}, fmt.Errorf("failed to get performance record: %w", err)
	}
	return mapRecordToResponse(record), nil
}

// Recompute implements performance.Service. The whole derivation is
// deterministic in its inputs, so re-running after a rule change or an
// attendance recalculation simply converges on the corrected values.
func (s *ServiceImpl) Recompute(ctx context.Context, employeeID, monthYear string) (performance.RecordResponse, error) {
	if err := performance.ValidateMonth(monthYear); err != nil {
		return performance.RecordResponse{}, err
	}
	from, to, err := performance.ParseMonth(monthYear)
	if err != nil {
		return performance.RecordResponse{}, err
	}

	records, err := s.attendanceRepo.ListByEmployeeAndRange(ctx, employeeID, from, to)
	if err != nil {
		return performance.RecordResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	ratings, err := s.performanceRepo.ListRatings(ctx, employeeID, from, to)
	if err != nil {
		return performance.RecordResponse{}, fmt.Errorf("failed to list rating samples: %w", err)
	}

	record := s.score(ctx, employeeID, monthYear, records, ratings)

	saved, err := s.performanceRepo.Upsert(ctx, record)
	if err != nil {
		return performance.RecordResponse{}, fmt.Errorf("failed to save performance record: %w", err)
	}

	slog.Info("Performance rollup recomputed",
		"employee_id", employeeID,
		"month", monthYear,
		"working_days", saved.WorkingDays,
		"score", saved.AveragePerformanceScore,
		"status", saved.PerformanceStatus)

	return mapRecordToResponse(saved), nil
}

// score builds the monthly rollup. Only closed records with a resolvable
// shift participate; open or shiftless records are skipped with a warning so
// one bad row never blocks the month.
func (s *ServiceImpl) score(
	ctx context.Context,
	employeeID, monthYear string,
	records []attendance.Record,
	ratings []performance.RatingSample,
) performance.Record {
	avgRating := AverageRating(ratings)
	bonusPoints := RatingBonusPoints(avgRating)
	ratingShare := RatingShare(bonusPoints)

	shiftCache := make(map[string]*shift.Definition)

	rollup := performance.Record{
		ID:                uuid.NewString(),
		EmployeeID:        employeeID,
		MonthYear:         monthYear,
		AverageRating:     round2(avgRating),
		RatingBonusPoints: bonusPoints,
		UpdatedAt:         s.now(),
	}

	var scoreSum float64
	for _, record := range records {
		if record.CheckOut == nil || record.ShiftID == nil {
			continue
		}

		def := s.cachedShift(ctx, *record.ShiftID, shiftCache)
		if def == nil {
			slog.Warn("Performance scoring skipped record with missing shift",
				"record_id", record.ID, "shift_id", *record.ShiftID)
			continue
		}

		rollup.WorkingDays++
		rollup.TotalDelayMinutes += record.DelayMinutes
		rollup.TotalOvertimeHours += record.OvertimeHours
		rollup.TotalRegularHours += record.RegularHours
		rollup.TotalBreakMinutes += record.TotalBreakMinutes

		scoreSum += RecordScore(record, *def, ratingShare)
	}

	if rollup.WorkingDays == 0 {
		rollup.AveragePerformanceScore = defaultScoreNoRecords
		rollup.PunctualityPercentage = 100
	} else {
		rollup.AveragePerformanceScore = round2(scoreSum / float64(rollup.WorkingDays))
		rollup.PunctualityPercentage = round2(PeriodPunctualityPercentage(rollup.TotalDelayMinutes))
	}
	rollup.TotalDelayMinutes = round2(rollup.TotalDelayMinutes)
	rollup.TotalOvertimeHours = round2(rollup.TotalOvertimeHours)
	rollup.TotalRegularHours = round2(rollup.TotalRegularHours)
	rollup.PerformanceStatus = ClassifyStatus(rollup.AveragePerformanceScore, rollup.PunctualityPercentage)

	return rollup
}

func (s *ServiceImpl) cachedShift(ctx context.Context, shiftID string, cache map[string]*shift.Definition) *shift.Definition {
	if def, ok := cache[shiftID]; ok {
		return def
	}
	def, err := s.shiftDefRepo.GetByID(ctx, shiftID)
	if err != nil {
		cache[shiftID] = nil
		return nil
	}
	cache[shiftID] = &def
	return &def
}

func mapRecordToResponse(record performance.Record) performance.RecordResponse {
	return performance.RecordResponse{
		EmployeeID:              record.EmployeeID,
		MonthYear:               record.MonthYear,
		WorkingDays:             record.WorkingDays,
		TotalDelayMinutes:       record.TotalDelayMinutes,
		TotalOvertimeHours:      record.TotalOvertimeHours,
		TotalRegularHours:       record.TotalRegularHours,
		TotalBreakMinutes:       record.TotalBreakMinutes,
		AveragePerformanceScore: record.AveragePerformanceScore,
		PunctualityPercentage:   record.PunctualityPercentage,
		PerformanceStatus:       record.PerformanceStatus,
		AverageRating:           record.AverageRating,
		RatingBonusPoints:       record.RatingBonusPoints,
		UpdatedAt:               record.UpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
