package attendance

import (
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type StartBreakRequest struct {
	Reason string `json:"reason"`
}

func (r *StartBreakRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason is required",
		})
	} else if len(r.Reason) > MaxBreakReasonLength {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must be at most 100 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MyRecordsFilter struct {
	StartDate *string
	EndDate   *string
	Status    *string
	Page      int
	Limit     int
}

type RecordsFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Status     *string
	Page       int
	Limit      int
}

type BreakSessionResponse struct {
	ID              string `json:"id"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
	Reason          string `json:"reason"`
}

type RecordResponse struct {
	ID                   string                 `json:"id"`
	EmployeeID           string                 `json:"employee_id"`
	EmployeeName         *string                `json:"employee_name,omitempty"`
	WorkDate             string                 `json:"work_date"`
	CheckInTime          string                 `json:"check_in_time"`
	CheckOutTime         *string                `json:"check_out_time,omitempty"`
	RegularHours         float64                `json:"regular_hours"`
	OvertimeHours        float64                `json:"overtime_hours"`
	DelayMinutes         float64                `json:"delay_minutes"`
	EarlyCheckoutPenalty float64                `json:"early_checkout_penalty"`
	TotalBreakMinutes    int                    `json:"total_break_minutes"`
	IsOnBreak            bool                   `json:"is_on_break"`
	BreakStartTime       *string                `json:"break_start_time,omitempty"`
	BreakReason          *string                `json:"break_reason,omitempty"`
	BreakSessions        []BreakSessionResponse `json:"break_sessions,omitempty"`
	Status               string                 `json:"status"`
	UpdatedAt            string                 `json:"updated_at"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	TotalPages int              `json:"total_pages"`
	Records    []RecordResponse `json:"records"`
}

// EligibilityResult carries the shift-eligibility verdict for the caller's
// resolved work date.
type EligibilityResult struct {
	CanCheckIn bool                 `json:"can_check_in"`
	Reason     string               `json:"reason,omitempty"`
	WorkDate   string               `json:"work_date"`
	Shift      *shift.ShiftResponse `json:"shift,omitempty"`
}
