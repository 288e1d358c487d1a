package review

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes. Callers classify them with
// errors.Is; the API layer maps them to status codes.
var (
	// ErrNotReviewer indicates someone other than the profile that requested
	// the session tried to review it. Maps to HTTP 403.
	ErrNotReviewer = errors.New("only the requesting profile can review a session")
)

// Error wraps unexpected failures with the operation that produced them.
type Error struct {
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("review service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("review service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(operation, message string, err error) *Error {
	return &Error{Operation: operation, Message: message, Err: err}
}
