package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/database"
)

type performanceRepository struct {
	db *database.DB
}

func NewPerformanceRepository(db *database.DB) performance.Repository {
	return &performanceRepository{db: db}
}

// Upsert implements performance.Repository. The (employee_id, month_year)
// unique constraint makes recomputation overwrite the previous rollup.
func (p *performanceRepository) Upsert(ctx context.Context, record performance.Record) (performance.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO performance_records (
			id, employee_id, month_year,
			working_days, total_delay_minutes, total_overtime_hours,
			total_regular_hours, total_break_minutes,
			average_performance_score, punctuality_percentage, performance_status,
			average_rating, rating_bonus_points
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (employee_id, month_year) DO UPDATE
		SET working_days = EXCLUDED.working_days,
			total_delay_minutes = EXCLUDED.total_delay_minutes,
			total_overtime_hours = EXCLUDED.total_overtime_hours,
			total_regular_hours = EXCLUDED.total_regular_hours,
			total_break_minutes = EXCLUDED.total_break_minutes,
			average_performance_score = EXCLUDED.average_performance_score,
			punctuality_percentage = EXCLUDED.punctuality_percentage,
			performance_status = EXCLUDED.performance_status,
			average_rating = EXCLUDED.average_rating,
			rating_bonus_points = EXCLUDED.rating_bonus_points,
			updated_at = NOW()
		RETURNING id, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.MonthYear,
		record.WorkingDays,
		record.TotalDelayMinutes,
		record.TotalOvertimeHours,
		record.TotalRegularHours,
		record.TotalBreakMinutes,
		record.AveragePerformanceScore,
		record.PunctualityPercentage,
		record.PerformanceStatus,
		record.AverageRating,
		record.RatingBonusPoints,
	).Scan(&record.ID, &record.UpdatedAt)

	if err != nil {
		return performance.Record{}, fmt.Errorf("failed to upsert performance record: %w", err)
	}
	return record, nil
}

// GetByEmployeeAndMonth implements performance.Repository.
func (p *performanceRepository) GetByEmployeeAndMonth(ctx context.Context, employeeID, monthYear string) (performance.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, month_year,
			   working_days, total_delay_minutes, total_overtime_hours,
			   total_regular_hours, total_break_minutes,
			   average_performance_score, punctuality_percentage, performance_status,
			   average_rating, rating_bonus_points, updated_at
		FROM performance_records
		WHERE employee_id = $1
		  AND month_year = $2
	`

	var record performance.Record
	err := q.QueryRow(ctx, query, employeeID, monthYear).Scan(
		&record.ID, &record.EmployeeID, &record.MonthYear,
		&record.WorkingDays, &record.TotalDelayMinutes, &record.TotalOvertimeHours,
		&record.TotalRegularHours, &record.TotalBreakMinutes,
		&record.AveragePerformanceScore, &record.PunctualityPercentage, &record.PerformanceStatus,
		&record.AverageRating, &record.RatingBonusPoints, &record.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return performance.Record{}, performance.ErrRecordNotFound
		}
		return performance.Record{}, fmt.Errorf("failed to get performance record: %w", err)
	}
	return record, nil
}

// ListRatings implements performance.Repository.
func (p *performanceRepository) ListRatings(ctx context.Context, employeeID string, from, to time.Time) ([]performance.RatingSample, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT id, employee_id, source, score, rated_at
		FROM ratings
		WHERE employee_id = $1
		  AND rated_at >= $2
		  AND rated_at <= $3
		ORDER BY rated_at ASC
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list rating samples: %w", err)
	}
	defer rows.Close()

	var samples []performance.RatingSample
	for rows.Next() {
		var sample performance.RatingSample
		if err := rows.Scan(&sample.ID, &sample.EmployeeID, &sample.Source, &sample.Score, &sample.RatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan rating sample: %w", err)
		}
		samples = append(samples, sample)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rating samples: %w", err)
	}
	return samples, nil
}
