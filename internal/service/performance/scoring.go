package performance

import (
	"math"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/service/timesheet"
)

// Component weights and caps for the per-record composite score.
const (
	weightCompletion  = 0.40
	weightPunctuality = 0.30
	weightBreaks      = 0.20
	weightRating      = 0.12

	overtimeBonusCap       = 8.0
	overtimeBonusPerHour   = 2.0
	delayPenaltyDivisor    = 5.0
	breakOverrunDivisor    = 5.0
	defaultScoreNoRecords  = 75.0
	punctualityZeroAtDelay = 60.0
)

// BreakBudgetMinutes is the expected break allowance for a shift of the given
// standard length.
func BreakBudgetMinutes(standardHours float64) float64 {
	switch {
	case standardHours <= 6:
		return 15
	case standardHours <= 8:
		return 30
	default:
		return 45
	}
}

// CompletionScore rewards covering the expected hours, capped at 100.
func CompletionScore(actualWorkHours, expectedHours float64) float64 {
	if expectedHours <= 0 {
		return 100
	}
	return math.Min(100, actualWorkHours/expectedHours*100)
}

// PunctualityScore is 100 with no delay and loses a point per five delay
// minutes, floored at 0.
func PunctualityScore(delayMinutes float64) float64 {
	if delayMinutes <= 0 {
		return 100
	}
	return math.Max(0, 100-delayMinutes/delayPenaltyDivisor)
}

// BreakDisciplineScore rewards staying within the shift-length break budget.
func BreakDisciplineScore(breakMinutes, standardHours float64) float64 {
	budget := BreakBudgetMinutes(standardHours)
	if breakMinutes <= budget {
		return 100
	}
	return math.Max(0, 100-(breakMinutes-budget)/breakOverrunDivisor)
}

// OvertimeBonus adds up to 8 points, 2 per overtime hour.
func OvertimeBonus(overtimeHours float64) float64 {
	if overtimeHours <= 0 {
		return 0
	}
	return math.Min(overtimeBonusCap, overtimeHours*overtimeBonusPerHour)
}

// RatingBonusPoints maps the period's average external rating to bonus
// points. A zero average means no ratings were supplied and contributes
// nothing rather than the bottom tier.
func RatingBonusPoints(averageRating float64) float64 {
	switch {
	case averageRating <= 0:
		return 0
	case averageRating >= 5.0:
		return 15
	case averageRating >= 4.5:
		return 10
	case averageRating >= 4.0:
		return 5
	case averageRating >= 3.0:
		return 0
	case averageRating >= 2.0:
		return -5
	default:
		return -10
	}
}

// AverageRating folds external rating samples into one period average:
// samples are grouped by source, each source is averaged, and the final
// value is the simple mean of the non-zero source averages.
func AverageRating(samples []performance.RatingSample) float64 {
	sums := make(map[string]float64)
	counts := make(map[string]int)
	for _, sample := range samples {
		sums[sample.Source] += sample.Score
		counts[sample.Source]++
	}

	var total float64
	var sources int
	for source, sum := range sums {
		avg := sum / float64(counts[source])
		if avg > 0 {
			total += avg
			sources++
		}
	}
	if sources == 0 {
		return 0
	}
	return total / float64(sources)
}

// RecordScore computes the composite score for one closed attendance record.
// ratingShare is the period rating bonus already weighted and distributed.
func RecordScore(record attendance.Record, def shift.Definition, ratingShare float64) float64 {
	standardHours, _ := timesheet.StandardHours(def)
	actualWorkHours := record.RegularHours + record.OvertimeHours

	completion := CompletionScore(actualWorkHours, standardHours)
	punctuality := PunctualityScore(record.DelayMinutes)
	breaks := BreakDisciplineScore(float64(record.TotalBreakMinutes), standardHours)

	score := completion*weightCompletion +
		punctuality*weightPunctuality +
		breaks*weightBreaks +
		OvertimeBonus(record.OvertimeHours) +
		ratingShare

	return math.Max(0, score)
}

// RatingShare is the per-record slice of the period rating bonus. The bonus
// is distributed evenly: every valid record receives the same weighted share.
func RatingShare(ratingBonusPoints float64) float64 {
	return ratingBonusPoints * weightRating
}

// PeriodPunctualityPercentage applies the coarser period-level rule: zero
// cumulative delay scores 100%, an hour or more scores 0%, with a linear
// slide in between.
func PeriodPunctualityPercentage(cumulativeDelayMinutes float64) float64 {
	if cumulativeDelayMinutes <= 0 {
		return 100
	}
	if cumulativeDelayMinutes >= punctualityZeroAtDelay {
		return 0
	}
	return 100 - cumulativeDelayMinutes*100/punctualityZeroAtDelay
}

// ClassifyStatus maps (score, punctuality%) to the categorical status. The
// two higher tiers require both thresholds; the third requires either.
func ClassifyStatus(score, punctualityPct float64) string {
	switch {
	case score >= 90 && punctualityPct >= 85:
		return performance.StatusExcellent
	case score >= 75 && punctualityPct >= 70:
		return performance.StatusGood
	case score >= 60 || punctualityPct >= 50:
		return performance.StatusNeedsImprovement
	default:
		return performance.StatusPoor
	}
}
