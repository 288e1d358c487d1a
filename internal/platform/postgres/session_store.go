package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

// sessionColumns is the column list every session query scans.
const sessionColumns = `id, from_profile_id, to_profile_id, status, topic, problem,
		start_at, end_at, calendar_event_ref, calendar_event_status,
		created_at, updated_at`

// Create implements store.SessionStore.Create
// Returns store.ErrInvalidEntity if a referenced profile does not exist
// (foreign key violation).
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.Session) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO sessions (id, from_profile_id, to_profile_id, status, topic, problem,
			start_at, end_at, calendar_event_ref, calendar_event_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.FromProfileID,
		session.ToProfileID,
		session.Status,
		session.Topic,
		session.Problem,
		session.StartAt,
		session.EndAt,
		session.CalendarEventRef,
		session.CalendarEventStatus,
		session.CreatedAt,
		session.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return MapError(err)
	}

	log.Info("session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("from_profile_id", session.FromProfileID.String()),
		slog.String("to_profile_id", session.ToProfileID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
func (s *PostgresSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, MapError(err)
	}

	return session, nil
}

// TransitionStatus implements store.SessionStore.TransitionStatus
// The transition is applied as a single compare-and-swap statement: the status
// is set only if the current status is one of the allowed predecessors. When
// zero rows are affected the session is re-read once to distinguish a missing
// session from a disallowed (or lost-race) transition.
func (s *PostgresSessionStore) TransitionStatus(
	ctx context.Context,
	id uuid.UUID,
	to domain.SessionStatus,
	from ...domain.SessionStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if !domain.IsValidSessionStatus(to) {
		return domain.ErrInvalidSessionStatus
	}
	if len(from) == 0 {
		return fmt.Errorf("%w: no predecessor states given", store.ErrInvalidTransition)
	}

	allowed := make([]string, len(from))
	for i, st := range from {
		allowed[i] = string(st)
	}

	query := `
		UPDATE sessions
		SET status = $1, updated_at = $2
		WHERE id = $3 AND status = ANY($4)
	`

	result, err := s.db.ExecContext(ctx, query, to, time.Now().UTC(), id, allowed)
	if err != nil {
		log.Error("failed to transition session status",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()),
			slog.String("to_status", string(to)))
		return MapError(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		current, getErr := s.GetByID(ctx, id)
		if getErr != nil {
			return getErr
		}
		log.Debug("session status transition rejected",
			slog.String("session_id", id.String()),
			slog.String("current_status", string(current.Status)),
			slog.String("to_status", string(to)))
		return fmt.Errorf("%w: %s -> %s", store.ErrInvalidTransition, current.Status, to)
	}

	log.Info("session status transitioned",
		slog.String("session_id", id.String()),
		slog.String("to_status", string(to)))
	return nil
}

// SetCalendarEvent implements store.SessionStore.SetCalendarEvent
func (s *PostgresSessionStore) SetCalendarEvent(
	ctx context.Context,
	id uuid.UUID,
	ref string,
	status domain.CalendarEventStatus,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE sessions
		SET calendar_event_ref = $1, calendar_event_status = $2, updated_at = $3
		WHERE id = $4
	`

	result, err := s.db.ExecContext(ctx, query, ref, status, time.Now().UTC(), id)
	if err != nil {
		log.Error("failed to set calendar event",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, "session"); err != nil {
		return err
	}

	log.Debug("calendar event recorded",
		slog.String("session_id", id.String()),
		slog.String("event_status", string(status)))
	return nil
}

// ListForProfile implements store.SessionStore.ListForProfile
// The count runs as a window function alongside the page so pagination
// metadata never requires a second scan or loading the full set.
func (s *PostgresSessionStore) ListForProfile(
	ctx context.Context,
	profileID uuid.UUID,
	status domain.SessionStatus,
	limit, offset int,
) ([]*domain.Session, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	query := `
		SELECT ` + sessionColumns + `, COUNT(*) OVER() AS total
		FROM sessions
		WHERE (from_profile_id = $1 OR to_profile_id = $1)
		  AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := s.db.QueryContext(ctx, query, profileID, string(status), limit, offset)
	if err != nil {
		log.Error("failed to query sessions for profile",
			slog.String("error", err.Error()),
			slog.String("profile_id", profileID.String()))
		return nil, 0, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sessions := []*domain.Session{}
	total := 0
	for rows.Next() {
		var session domain.Session
		var status string
		var eventStatus string

		err := rows.Scan(
			&session.ID,
			&session.FromProfileID,
			&session.ToProfileID,
			&status,
			&session.Topic,
			&session.Problem,
			&session.StartAt,
			&session.EndAt,
			&session.CalendarEventRef,
			&eventStatus,
			&session.CreatedAt,
			&session.UpdatedAt,
			&total,
		)
		if err != nil {
			log.Error("failed to scan session row",
				slog.String("error", err.Error()))
			return nil, 0, MapError(err)
		}

		session.Status = domain.SessionStatus(status)
		session.CalendarEventStatus = domain.CalendarEventStatus(eventStatus)
		sessions = append(sessions, &session)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, 0, MapError(err)
	}

	// The window count is only present on returned rows; an empty page past
	// the end needs a direct count.
	if len(sessions) == 0 && offset > 0 {
		countQuery := `
			SELECT COUNT(*)
			FROM sessions
			WHERE (from_profile_id = $1 OR to_profile_id = $1)
			  AND ($2 = '' OR status = $2)
		`
		if err := s.db.QueryRowContext(ctx, countQuery, profileID, string(status)).Scan(&total); err != nil {
			return nil, 0, MapError(err)
		}
	}

	return sessions, total, nil
}

// FindCompletable implements store.SessionStore.FindCompletable
func (s *PostgresSessionStore) FindCompletable(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id
		FROM sessions
		WHERE status = $1 AND end_at < $2
		ORDER BY end_at ASC
		LIMIT $3
	`

	rows, err := s.db.QueryContext(ctx, query, domain.SessionStatusAccepted, before, limit)
	if err != nil {
		log.Error("failed to query completable sessions",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, MapError(err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, MapError(err)
	}

	return ids, nil
}

// CountForMentor implements store.SessionStore.CountForMentor
// Sessions count toward the mentor aggregate once delivered: the profile is
// the requested-of side and the status is completed or reviewed.
func (s *PostgresSessionStore) CountForMentor(ctx context.Context, profileID uuid.UUID) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM sessions
		WHERE to_profile_id = $1 AND status = ANY($2)
	`

	var count int
	err := s.db.QueryRowContext(
		ctx,
		query,
		profileID,
		[]string{string(domain.SessionStatusCompleted), string(domain.SessionStatusReviewed)},
	).Scan(&count)
	if err != nil {
		return 0, MapError(err)
	}

	return count, nil
}

// WithTx implements store.SessionStore.WithTx
func (s *PostgresSessionStore) WithTx(tx *sql.Tx) store.SessionStore {
	return &PostgresSessionStore{
		db:     tx,
		logger: s.logger,
	}
}

// scanSession scans a single session row.
func scanSession(row *sql.Row) (*domain.Session, error) {
	var session domain.Session
	var status string
	var eventStatus string

	err := row.Scan(
		&session.ID,
		&session.FromProfileID,
		&session.ToProfileID,
		&status,
		&session.Topic,
		&session.Problem,
		&session.StartAt,
		&session.EndAt,
		&session.CalendarEventRef,
		&eventStatus,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	session.Status = domain.SessionStatus(status)
	session.CalendarEventStatus = domain.CalendarEventStatus(eventStatus)
	return &session, nil
}
