// Package error defines domain-specific errors for the reconciliation system.
package error

import "errors"

// Normalization structural errors. Cell-level parse failures never surface
// as errors (they degrade to safe defaults); these cover files that are
// unusable as a whole.
var (
	// ErrEmptyGrid is returned when a file produced no rows at all.
	ErrEmptyGrid = errors.New("file contains no rows")

	// ErrHeaderNotFound is returned when no header row could be located.
	ErrHeaderNotFound = errors.New("header row not found")

	// ErrColumnsUnresolved is returned when data rows exist but the
	// mandatory columns could not be resolved from the header.
	ErrColumnsUnresolved = errors.New("mandatory columns could not be resolved")
)

// NormalizationErrorCode defines error codes for normalization errors.
// Format: NRM-XXYYYY where XX is category and YYYY is specific error.
type NormalizationErrorCode string

const (
	// Structural errors (01XXXX)
	ErrCodeEmptyGrid         NormalizationErrorCode = "NRM-010001"
	ErrCodeHeaderNotFound    NormalizationErrorCode = "NRM-010002"
	ErrCodeColumnsUnresolved NormalizationErrorCode = "NRM-010003"
)

// NormalizationError represents a normalization error with code and message.
type NormalizationError struct {
	Code    NormalizationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NormalizationError) Unwrap() error {
	return e.Err
}

// NewNormalizationError creates a new NormalizationError with the given code and message.
func NewNormalizationError(code NormalizationErrorCode, message string, err error) *NormalizationError {
	return &NormalizationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
