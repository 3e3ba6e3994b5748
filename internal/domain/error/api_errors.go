// Package error defines domain-specific errors for the Budget Engine application.
package error

// APIErrorCode defines error codes for transport-level failures.
// Format: API-XXYYYY where XX is category and YYYY is specific error.
type APIErrorCode string

const (
	// Throttling errors (01XXXX)
	ErrCodeRateLimited APIErrorCode = "API-010001"
)
