package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// SessionStatus represents the lifecycle state of a mentoring session.
type SessionStatus string

// Possible session status values
const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusAccepted  SessionStatus = "accepted"
	SessionStatusDeclined  SessionStatus = "declined"
	SessionStatusCancelled SessionStatus = "cancelled"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusReviewed  SessionStatus = "reviewed"
)

// CalendarEventStatus tracks the outcome of the calendar side effect that
// runs after a session is accepted. The session status itself never depends
// on it; a failed event leaves the session accepted and retryable.
type CalendarEventStatus string

// Possible calendar event status values
const (
	CalendarEventStatusNone    CalendarEventStatus = "none"
	CalendarEventStatusPending CalendarEventStatus = "pending"
	CalendarEventStatusCreated CalendarEventStatus = "created"
	CalendarEventStatusFailed  CalendarEventStatus = "failed"
)

// Session-specific validation errors. All wrap ErrValidation so callers can
// classify them with a single errors.Is check.
var (
	// ErrSessionIDEmpty is returned when a session ID is empty or nil.
	ErrSessionIDEmpty = fmt.Errorf("%w: session ID cannot be empty", ErrValidation)

	// ErrSessionFromEmpty is returned when the requesting profile ID is empty or nil.
	ErrSessionFromEmpty = fmt.Errorf("%w: session requester profile ID cannot be empty", ErrValidation)

	// ErrSessionToEmpty is returned when the requested-of profile ID is empty or nil.
	ErrSessionToEmpty = fmt.Errorf("%w: session mentor profile ID cannot be empty", ErrValidation)

	// ErrSessionTopicEmpty is returned when a session's topic is empty.
	ErrSessionTopicEmpty = fmt.Errorf("%w: session topic cannot be empty", ErrValidation)

	// ErrSessionProblemEmpty is returned when a session's problem statement is empty.
	ErrSessionProblemEmpty = fmt.Errorf("%w: session problem cannot be empty", ErrValidation)

	// ErrSessionScheduleInvalid is returned when the scheduled end does not
	// come after the scheduled start.
	ErrSessionScheduleInvalid = fmt.Errorf("%w: session end must be after start", ErrValidation)
)

// sessionTransitions is the forward-only lifecycle graph. Declined, cancelled
// and reviewed are terminal.
var sessionTransitions = map[SessionStatus][]SessionStatus{
	SessionStatusPending:   {SessionStatusAccepted, SessionStatusDeclined, SessionStatusCancelled},
	SessionStatusAccepted:  {SessionStatusCompleted, SessionStatusCancelled},
	SessionStatusCompleted: {SessionStatusReviewed},
}

// Session is a scheduled mentoring engagement between two profiles, tracked
// through a status lifecycle. From and To are immutable after creation; the
// status only ever moves forward through the lifecycle graph, and sessions
// are never hard-deleted (cancellation is a status, not a deletion).
type Session struct {
	ID                  uuid.UUID           `json:"id"`
	FromProfileID       uuid.UUID           `json:"from_profile_id"`
	ToProfileID         uuid.UUID           `json:"to_profile_id"`
	Status              SessionStatus       `json:"status"`
	Topic               string              `json:"topic"`
	Problem             string              `json:"problem"`
	StartAt             time.Time           `json:"start_at"`
	EndAt               time.Time           `json:"end_at"`
	CalendarEventRef    string              `json:"calendar_event_ref,omitempty"`
	CalendarEventStatus CalendarEventStatus `json:"calendar_event_status"`
	CreatedAt           time.Time           `json:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at"`
}

// NewSession creates a new pending Session request from one profile to
// another. It generates a new UUID for the session ID and sets the
// creation/update timestamps. Returns an error if validation fails,
// including when end is not strictly after start.
func NewSession(
	fromProfileID, toProfileID uuid.UUID,
	topic, problem string,
	startAt, endAt time.Time,
) (*Session, error) {
	session := &Session{
		ID:                  uuid.New(),
		FromProfileID:       fromProfileID,
		ToProfileID:         toProfileID,
		Status:              SessionStatusPending,
		Topic:               topic,
		Problem:             problem,
		StartAt:             startAt,
		EndAt:               endAt,
		CalendarEventStatus: CalendarEventStatusNone,
		CreatedAt:           time.Now().UTC(),
		UpdatedAt:           time.Now().UTC(),
	}

	if err := session.Validate(); err != nil {
		return nil, err
	}

	return session, nil
}

// Validate checks if the Session has valid data.
func (s *Session) Validate() error {
	if s.ID == uuid.Nil {
		return ErrSessionIDEmpty
	}

	if s.FromProfileID == uuid.Nil {
		return ErrSessionFromEmpty
	}

	if s.ToProfileID == uuid.Nil {
		return ErrSessionToEmpty
	}

	if s.Topic == "" {
		return ErrSessionTopicEmpty
	}

	if s.Problem == "" {
		return ErrSessionProblemEmpty
	}

	if !s.EndAt.After(s.StartAt) {
		return ErrSessionScheduleInvalid
	}

	if !IsValidSessionStatus(s.Status) {
		return ErrInvalidSessionStatus
	}

	return nil
}

// IsValidSessionStatus checks if the given status is a defined SessionStatus.
func IsValidSessionStatus(status SessionStatus) bool {
	switch status {
	case SessionStatusPending, SessionStatusAccepted, SessionStatusDeclined,
		SessionStatusCancelled, SessionStatusCompleted, SessionStatusReviewed:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether the lifecycle graph permits moving from the
// current status to the target status.
func (s SessionStatus) CanTransitionTo(target SessionStatus) bool {
	for _, allowed := range sessionTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are permitted from the
// given status.
func (s SessionStatus) IsTerminal() bool {
	return len(sessionTransitions[s]) == 0
}
