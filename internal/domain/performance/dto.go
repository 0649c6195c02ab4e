package performance

import (
	"time"

	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// PERFORMANCE DTOs
// ========================================

type RecordResponse struct {
	EmployeeID string `json:"employee_id"`
	MonthYear  string `json:"month_year"`

	WorkingDays        int     `json:"working_days"`
	TotalDelayMinutes  float64 `json:"total_delay_minutes"`
	TotalOvertimeHours float64 `json:"total_overtime_hours"`
	TotalRegularHours  float64 `json:"total_regular_hours"`
	TotalBreakMinutes  int     `json:"total_break_minutes"`

	AveragePerformanceScore float64 `json:"average_performance_score"`
	PunctualityPercentage   float64 `json:"punctuality_percentage"`
	PerformanceStatus       string  `json:"performance_status"`

	AverageRating     float64 `json:"average_rating"`
	RatingBonusPoints float64 `json:"rating_bonus_points"`

	UpdatedAt string `json:"updated_at"`
}

// ParseMonth validates a "YYYY-MM" month key and returns the first and last
// instants of that month.
func ParseMonth(monthYear string) (from, to time.Time, err error) {
	t, parseErr := time.Parse("2006-01", monthYear)
	if parseErr != nil {
		return time.Time{}, time.Time{}, ErrInvalidMonth
	}
	from = t
	to = t.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return from, to, nil
}

// ValidateMonth is the request-level check used by handlers.
func ValidateMonth(monthYear string) error {
	if validator.IsEmpty(monthYear) {
		return ErrInvalidMonth
	}
	if _, _, err := ParseMonth(monthYear); err != nil {
		return err
	}
	return nil
}
