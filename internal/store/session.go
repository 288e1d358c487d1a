package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// SessionStore defines the interface for session data persistence.
//
// Status changes go exclusively through TransitionStatus, which applies the
// change as an atomic conditional update so that concurrent responders to the
// same session cannot both win. Sessions are never deleted.
type SessionStore interface {
	// Create saves a new session to the store.
	// Returns validation errors from the domain Session if data is invalid.
	// Returns ErrInvalidEntity if a referenced profile does not exist
	// (foreign key violation).
	Create(ctx context.Context, session *domain.Session) error

	// GetByID retrieves a session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error)

	// TransitionStatus moves a session to the target status only if its
	// current status is one of the allowed predecessor states. The update is
	// a single compare-and-swap statement, not a read-modify-write.
	// Returns ErrSessionNotFound if the session does not exist.
	// Returns ErrInvalidTransition if the session exists but its current
	// status is not in from, including when a concurrent transition won the
	// race.
	TransitionStatus(
		ctx context.Context,
		id uuid.UUID,
		to domain.SessionStatus,
		from ...domain.SessionStatus,
	) error

	// SetCalendarEvent records the outcome of the calendar side effect for an
	// accepted session: the external event reference (empty on failure) and
	// the event status marker. It never touches the session status.
	// Returns ErrSessionNotFound if the session does not exist.
	SetCalendarEvent(
		ctx context.Context,
		id uuid.UUID,
		ref string,
		status domain.CalendarEventStatus,
	) error

	// ListForProfile retrieves sessions in which the profile participates on
	// either side, optionally filtered by status (empty status means all),
	// newest first. The total count for pagination metadata is computed in
	// SQL alongside the page.
	ListForProfile(
		ctx context.Context,
		profileID uuid.UUID,
		status domain.SessionStatus,
		limit, offset int,
	) ([]*domain.Session, int, error)

	// FindCompletable returns the IDs of accepted sessions whose scheduled
	// end has passed, oldest first, capped at limit. The completion sweeper
	// drives these through the accepted -> completed transition.
	FindCompletable(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error)

	// CountForMentor counts sessions delivered by the mentor profile: the
	// profile is the requested-of side and the status is completed or
	// reviewed. This is the input to the sessionCount aggregate.
	CountForMentor(ctx context.Context, profileID uuid.UUID) (int, error)

	// WithTx returns a new SessionStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) SessionStore
}
