package error

import "errors"

// Reconciliation session errors.
var (
	// ErrSessionNotInitialized is returned when a bank pass is requested
	// before Initialize succeeded.
	ErrSessionNotInitialized = errors.New("session not initialized")

	// ErrMissingLedgerInput is returned when neither the sales nor the
	// purchases file yielded any parseable record at initialization.
	ErrMissingLedgerInput = errors.New("sales and purchases files have no parseable records")

	// ErrSessionNotFound is returned by session stores when no snapshot
	// exists under the requested ID.
	ErrSessionNotFound = errors.New("session not found")
)

// SessionErrorCode defines error codes for session errors.
// Format: SES-XXYYYY where XX is category and YYYY is specific error.
type SessionErrorCode string

const (
	// Precondition errors (01XXXX)
	ErrCodeSessionNotInitialized SessionErrorCode = "SES-010001"
	ErrCodeMissingLedgerInput    SessionErrorCode = "SES-010002"

	// Store errors (02XXXX)
	ErrCodeSessionNotFound SessionErrorCode = "SES-020001"
)

// SessionError represents a session error with code and message.
type SessionError struct {
	Code    SessionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *SessionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// NewSessionError creates a new SessionError with the given code and message.
func NewSessionError(code SessionErrorCode, message string, err error) *SessionError {
	return &SessionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
