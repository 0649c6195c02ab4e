package shift

import "time"

// Category selects the accounting rules for a shift. The free-text Name is
// cosmetic only and never drives calculation branches.
type Category string

const (
	CategoryDay    Category = "day"
	CategoryNight  Category = "night"
	CategoryCustom Category = "custom"
)

var CategoryValues = []string{
	string(CategoryDay),
	string(CategoryNight),
	string(CategoryCustom),
}

// Definition is an administrator-edited shift template. StartTime and EndTime
// are local clock times in "15:04" form; EndTime earlier than StartTime means
// the shift crosses midnight. When AllTimeOvertime is set every worked minute
// counts as overtime and no delay is ever computed.
type Definition struct {
	ID              string
	Name            string
	Category        Category
	StartTime       string
	EndTime         string
	AllTimeOvertime bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Assignment binds an employee to at most one shift per work-date.
// ShiftID is nil when the employee has no shift scheduled; IsDayOff marks an
// explicit rest day.
type Assignment struct {
	ID         string
	EmployeeID string
	WorkDate   time.Time
	ShiftID    *string
	IsDayOff   bool
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined from shift_definitions when present
	Shift *Definition
}

// StandardHoursDay and StandardHoursNight are the expected paid durations for
// the named shift categories; custom shifts derive theirs from start/end.
const (
	StandardHoursDay      = 7.0
	StandardHoursNight    = 8.0
	StandardHoursFallback = 8.0
)
