package response

import (
	"errors"
	"net/http"

	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/attendance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/auth"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/employee"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/performance"
	"github.com/shiftwise-hq/worktime-backend-go/internal/domain/shift"
	"github.com/shiftwise-hq/worktime-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee account is inactive")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift definition not found")
	case errors.Is(err, shift.ErrShiftNameExists):
		Conflict(w, "Shift definition with this name already exists")
	case errors.Is(err, shift.ErrAssignmentNotFound):
		NotFound(w, "Shift assignment not found")
	case errors.Is(err, shift.ErrNoAssignment),
		errors.Is(err, shift.ErrDayOff),
		errors.Is(err, shift.ErrOutsideShiftWindow):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn),
		errors.Is(err, attendance.ErrAlreadyCheckedOut),
		errors.Is(err, attendance.ErrAlreadyOnBreak),
		errors.Is(err, attendance.ErrNotOnBreak):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn),
		errors.Is(err, attendance.ErrNoOpenRecord),
		errors.Is(err, attendance.ErrBreakReasonRequired),
		errors.Is(err, attendance.ErrBreakReasonTooLong):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Performance domain errors
	case errors.Is(err, performance.ErrRecordNotFound):
		NotFound(w, "Performance record not found")
	case errors.Is(err, performance.ErrInvalidMonth):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
