package performance

import "time"

// Performance status tiers.
const (
	StatusExcellent        = "excellent"
	StatusGood             = "good"
	StatusNeedsImprovement = "needs_improvement"
	StatusPoor             = "poor"
)

// Record is the monthly performance rollup for one employee, upserted by the
// scoring engine and keyed by (employee, month).
type Record struct {
	ID         string
	EmployeeID string
	MonthYear  string // "2006-01"

	WorkingDays        int
	TotalDelayMinutes  float64
	TotalOvertimeHours float64
	TotalRegularHours  float64
	TotalBreakMinutes  int

	AveragePerformanceScore float64
	PunctualityPercentage   float64
	PerformanceStatus       string

	AverageRating     float64
	RatingBonusPoints float64

	UpdatedAt time.Time
}

// RatingSample is an externally supplied rating on a 1-5 scale. Source
// distinguishes where the rating came from (e.g. "manager", "task").
type RatingSample struct {
	ID         string
	EmployeeID string
	Source     string
	Score      float64
	RatedAt    time.Time
}
