package session

import (
	"errors"
	"fmt"
)

// Sentinel errors for expected failure modes. Callers classify them with
// errors.Is; the API layer maps them to status codes.
var (
	// ErrSelfSession indicates a profile tried to request a session with
	// itself. Maps to HTTP 400.
	ErrSelfSession = errors.New("cannot request a session with your own profile")

	// ErrInvalidDecision indicates a respond call with a decision other than
	// accepted or declined. Maps to HTTP 400.
	ErrInvalidDecision = errors.New("decision must be accepted or declined")

	// ErrNotRecipient indicates someone other than the requested mentor tried
	// to respond to a session request. Maps to HTTP 403.
	ErrNotRecipient = errors.New("only the requested mentor can respond")

	// ErrNotParticipant indicates the acting profile is on neither side of
	// the session. Maps to HTTP 403.
	ErrNotParticipant = errors.New("profile is not a participant in this session")
)

// Error wraps unexpected failures with the operation that produced them.
type Error struct {
	Operation string
	Message   string
	Err       error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("session service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("session service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

func newError(operation, message string, err error) *Error {
	return &Error{Operation: operation, Message: message, Err: err}
}
