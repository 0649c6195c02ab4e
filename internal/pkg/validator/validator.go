package validator

import (
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// ParseClockTime parses a local clock time in "HH:MM" or "HH:MM:SS" form.
func ParseClockTime(clockStr string) (time.Time, bool) {
	t, err := time.Parse("15:04", clockStr)
	if err == nil {
		return t, true
	}
	t, err = time.Parse("15:04:05", clockStr)
	return t, err == nil
}

// ClockMinutes converts a clock string to minutes after midnight.
func ClockMinutes(clockStr string) (int, bool) {
	t, ok := ParseClockTime(clockStr)
	if !ok {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
