// Package error defines domain-specific errors for the Budget Engine application.
package error

import "errors"

// Forecast (allocation / breakdown) domain errors.
var (
	// ErrNegativeAvailable is returned when a negative pool is passed to the
	// allocation engine. Callers must gate on deficit state instead.
	ErrNegativeAvailable = errors.New("available amount must not be negative")

	// ErrReservedExceedsAvailable is returned when the reserved amount is
	// larger than the available pool.
	ErrReservedExceedsAvailable = errors.New("reserved amount exceeds available pool")

	// ErrMissingReferenceDate is returned when a computation pass is requested
	// without a reference "now".
	ErrMissingReferenceDate = errors.New("reference date is required")

	// ErrPreferencesNotFound is returned when a user has no stored forecast
	// preferences.
	ErrPreferencesNotFound = errors.New("forecast preferences not found")

	// ErrTooManyManualPlans is returned when preferences carry more manual
	// plans than MaxManualPlans allows.
	ErrTooManyManualPlans = errors.New("too many manual plans")
)

// ForecastErrorCode defines error codes for forecast errors.
// Format: FOR-XXYYYY where XX is category and YYYY is specific error.
type ForecastErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeNegativeAvailable        ForecastErrorCode = "FOR-010001"
	ErrCodeReservedExceedsAvailable ForecastErrorCode = "FOR-010002"
	ErrCodeMissingReferenceDate     ForecastErrorCode = "FOR-010003"
	ErrCodeTooManyManualPlans       ForecastErrorCode = "FOR-010004"

	// Lookup errors (02XXXX)
	ErrCodePreferencesNotFound ForecastErrorCode = "FOR-020001"
)

// ForecastError represents a forecast error with code and message.
type ForecastError struct {
	Code    ForecastErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *ForecastError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *ForecastError) Unwrap() error {
	return e.Err
}

// NewForecastError creates a new ForecastError with the given code and message.
func NewForecastError(code ForecastErrorCode, message string, err error) *ForecastError {
	return &ForecastError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
