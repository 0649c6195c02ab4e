package performance

import "errors"

// Performance domain errors
var (
	ErrRecordNotFound = errors.New("performance record not found")
	ErrInvalidMonth   = errors.New("month must be in YYYY-MM format")
)
