// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"time"

	"defter/internal/core/apperror"
)

// DateFormat is the wire format for business dates.
const DateFormat = "2006-01-02"

// ParseDate parses a business date, accepting the plain date form and
// RFC 3339 timestamps.
func ParseDate(s string) (time.Time, error) {
	if t, err := time.Parse(DateFormat, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, apperror.NewValidation("invalid date format, expected YYYY-MM-DD").
			WithDetail("value", s)
	}
	return t, nil
}

// FormatDate renders a business date in wire format.
func FormatDate(t time.Time) string {
	return t.Format(DateFormat)
}

// ErrorResponse for error details.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// DeleteResponse reports the outcome of a delete: a boolean, not an error.
type DeleteResponse struct {
	Deleted bool `json:"deleted"`
}
