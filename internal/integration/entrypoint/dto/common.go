// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"fmt"
	"time"
)

// dateLayout is the wire format for calendar dates. The engine works in
// whole days; timestamps are never accepted.
const dateLayout = "2006-01-02"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ParseDate parses a required wire date.
func ParseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a %s date: %w", field, dateLayout, err)
	}
	return t, nil
}

// ParseOptionalDate parses a nullable wire date.
func ParseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := ParseDate(field, *value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FormatDate renders a time value as a wire date.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// FormatOptionalDate renders a nullable time value as a wire date.
func FormatOptionalDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(dateLayout)
	return &s
}
