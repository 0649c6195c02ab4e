package shift

import (
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// ========================================
// SHIFT DTOs
// ========================================

type CreateShiftRequest struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AllTimeOvertime bool   `json:"all_time_overtime"`
}

func (r *CreateShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if !validator.IsInSlice(r.Category, CategoryValues) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: day, night, custom",
		})
	}

	if _, ok := validator.ParseClockTime(r.StartTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start_time must be a HH:MM clock time",
		})
	}

	if _, ok := validator.ParseClockTime(r.EndTime); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end_time must be a HH:MM clock time",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignShiftRequest struct {
	EmployeeID string  `json:"employee_id"`
	WorkDate   string  `json:"work_date"`
	ShiftID    *string `json:"shift_id"`
	IsDayOff   bool    `json:"is_day_off"`
}

func (r *AssignShiftRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee_id is required",
		})
	}

	if _, ok := validator.IsValidDate(r.WorkDate); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "work_date",
			Message: "work_date must be YYYY-MM-DD",
		})
	}

	if r.ShiftID == nil && !r.IsDayOff {
		errs = append(errs, validator.ValidationError{
			Field:   "shift_id",
			Message: "shift_id is required unless is_day_off is set",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ShiftResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Category        string `json:"category"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	AllTimeOvertime bool   `json:"all_time_overtime"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type AssignmentResponse struct {
	ID         string         `json:"id"`
	EmployeeID string         `json:"employee_id"`
	WorkDate   string         `json:"work_date"`
	IsDayOff   bool           `json:"is_day_off"`
	Shift      *ShiftResponse `json:"shift,omitempty"`
}

// EligibilityResponse reports whether a check-in is currently permitted.
// Reason is human-readable and set whenever CanCheckIn is false.
type EligibilityResponse struct {
	CanCheckIn bool           `json:"can_check_in"`
	Reason     string         `json:"reason,omitempty"`
	WorkDate   string         `json:"work_date"`
	Shift      *ShiftResponse `json:"shift,omitempty"`
}
