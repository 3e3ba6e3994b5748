// Package error defines domain-specific errors for the Budget Engine application.
package error

import "errors"

// Schedule (recurrence expansion) domain errors.
var (
	// ErrMissingAnchor is returned when a recurring item carries no start date,
	// renewal date, or next-occurrence reference to anchor expansion on.
	ErrMissingAnchor = errors.New("recurring item has no anchor date")

	// ErrSemiMonthlyAnchors is returned when a semi-monthly item does not carry
	// exactly two day-of-month anchors.
	ErrSemiMonthlyAnchors = errors.New("semi-monthly item requires exactly two anchor days")

	// ErrInvalidAnchorDay is returned when a day-of-month anchor is outside 1-31.
	ErrInvalidAnchorDay = errors.New("anchor day must be between 1 and 31")

	// ErrUnknownFrequency is returned when a frequency value has no step rule.
	// Expansion is bounded instead of looping; this is a data-integrity warning.
	ErrUnknownFrequency = errors.New("unknown recurrence frequency")

	// ErrDebtMissingDueReference is returned when a debt carries neither a next
	// due date nor a payment day of month. Silent "1st of month" defaults are
	// deliberately rejected.
	ErrDebtMissingDueReference = errors.New("debt has neither next due date nor payment day of month")

	// ErrInvalidWindow is returned when a window's end precedes its start.
	ErrInvalidWindow = errors.New("window end precedes window start")
)

// ScheduleErrorCode defines error codes for schedule errors.
// Format: SCH-XXYYYY where XX is category and YYYY is specific error.
type ScheduleErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeMissingAnchor           ScheduleErrorCode = "SCH-010001"
	ErrCodeSemiMonthlyAnchors      ScheduleErrorCode = "SCH-010002"
	ErrCodeInvalidAnchorDay        ScheduleErrorCode = "SCH-010003"
	ErrCodeDebtMissingDueReference ScheduleErrorCode = "SCH-010004"
	ErrCodeInvalidWindow           ScheduleErrorCode = "SCH-010005"

	// Data-integrity errors (02XXXX)
	ErrCodeUnknownFrequency ScheduleErrorCode = "SCH-020001"
)

// ScheduleError represents a schedule error with code and message.
type ScheduleError struct {
	Code    ScheduleErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ScheduleError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ScheduleError) Unwrap() error {
	return e.Err
}

// NewScheduleError creates a new ScheduleError with the given code and message.
func NewScheduleError(code ScheduleErrorCode, message string, err error) *ScheduleError {
	return &ScheduleError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
