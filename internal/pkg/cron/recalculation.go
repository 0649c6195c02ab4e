package cron

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/recalculation"
)

// RecalculationJobs wires the attendance recalculation batch and the monthly
// performance rollup refresh onto the scheduler.
type RecalculationJobs struct {
	recalcSvc      *recalculation.Service
	performanceSvc performance.Service
	employeeRepo   employee.Repository
	interval       time.Duration
	perfInterval   time.Duration
	now            func() time.Time
}

func NewRecalculationJobs(
	recalcSvc *recalculation.Service,
	performanceSvc performance.Service,
	employeeRepo employee.Repository,
	interval time.Duration,
	perfInterval time.Duration,
	clock func() time.Time,
) *RecalculationJobs {
	if clock == nil {
		clock = time.Now
	}
	return &RecalculationJobs{
		recalcSvc:      recalcSvc,
		performanceSvc: performanceSvc,
		employeeRepo:   employeeRepo,
		interval:       interval,
		perfInterval:   perfInterval,
		now:            clock,
	}
}

func (j *RecalculationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recalculate_attendance_accounting", j.interval, j.RecalculateAccounting)
	scheduler.AddJob("refresh_monthly_performance", j.perfInterval, j.RefreshMonthlyPerformance)
}

// RecalculateAccounting runs the windowed recalculation pass. A run already
// in flight is not an error for the cron loop; the next tick will catch up.
func (j *RecalculationJobs) RecalculateAccounting(ctx context.Context) error {
	result, err := j.recalcSvc.RunWindowed(ctx)
	if err != nil {
		if errors.Is(err, recalculation.ErrRunInProgress) {
			slog.Debug("Cron: recalculation already running, skipping tick")
			return nil
		}
		return err
	}

	if result.RecordsUpdated > 0 || result.Errors > 0 {
		slog.Info("Cron: attendance recalculation",
			"processed", result.RecordsProcessed,
			"updated", result.RecordsUpdated,
			"errors", result.Errors)
	}
	return nil
}

// RefreshMonthlyPerformance recomputes the current month's rollup for every
// active employee so stored performance records track recalculated
// attendance. Per-employee failures are logged and do not abort the pass.
func (j *RecalculationJobs) RefreshMonthlyPerformance(ctx context.Context) error {
	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return err
	}

	monthYear := j.now().UTC().Format("2006-01")
	var failed int
	for _, emp := range employees {
		if _, err := j.performanceSvc.Recompute(ctx, emp.ID, monthYear); err != nil {
			failed++
			slog.Warn("Cron: performance refresh failed for employee",
				"employee_id", emp.ID,
				"month", monthYear,
				"error", err)
		}
	}

	slog.Info("Cron: monthly performance refresh",
		"month", monthYear,
		"employees", len(employees),
		"failed", failed)
	return nil
}
