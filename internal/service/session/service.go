package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/events"
	"github.com/mentorhub/mentorhub-api/internal/platform/logger"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/store"
	"github.com/mentorhub/mentorhub-api/internal/task"
)

// Decision values accepted by Respond.
const (
	DecisionAccepted = "accepted"
	DecisionDeclined = "declined"
)

// AggregatesEngine is the slice of the aggregates service this package
// needs: the in-transaction recompute and the post-commit cache drop.
type AggregatesEngine interface {
	Recalculate(ctx context.Context, tx *sql.Tx, profileID uuid.UUID) (domain.ProfileStats, error)
	InvalidateStats(ctx context.Context, profileID uuid.UUID)
}

// Service provides session lifecycle operations.
type Service interface {
	// Request creates a pending session from one profile to another.
	// Returns store.ErrProfileNotFound if the recipient does not exist,
	// ErrSelfSession for a self-request, and domain validation errors for
	// bad input.
	Request(
		ctx context.Context,
		fromProfileID, toProfileID uuid.UUID,
		topic, problem string,
		startAt, endAt time.Time,
	) (*domain.Session, error)

	// Respond records the mentor's decision on a pending request. On accept,
	// the calendar event side effect is requested after the transition
	// commits; a provider failure never reverts the acceptance.
	// Returns ErrNotRecipient if acting profile is not the requested mentor,
	// ErrInvalidDecision for unknown decisions, store.ErrSessionNotFound, or
	// store.ErrInvalidTransition when the session is not pending.
	Respond(
		ctx context.Context,
		sessionID, actingProfileID uuid.UUID,
		decision string,
	) (*domain.Session, error)

	// Cancel cancels a pending or accepted session. Either participant may
	// cancel. Returns ErrNotParticipant, store.ErrSessionNotFound, or
	// store.ErrInvalidTransition for sessions past cancellation.
	Cancel(ctx context.Context, sessionID, actingProfileID uuid.UUID) (*domain.Session, error)

	// Complete marks an accepted session completed and recomputes the
	// mentor's aggregates in the same transaction.
	Complete(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)

	// List returns the sessions in which the profile participates on either
	// side, newest first. status filters when non-empty; page starts at 1.
	// The second return value is the total matching count.
	List(
		ctx context.Context,
		profileID uuid.UUID,
		status domain.SessionStatus,
		page, limit int,
	) ([]*domain.Session, int, error)

	// CompleteDue completes up to limit accepted sessions whose scheduled
	// end precedes before. Used by the completion sweeper.
	CompleteDue(ctx context.Context, before time.Time, limit int) (int, error)
}

// serviceImpl implements Service.
type serviceImpl struct {
	profileStore store.ProfileStore
	sessionStore store.SessionStore
	txRunner     store.TxRunner
	aggregates   AggregatesEngine
	emitter      events.EventEmitter
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

var _ Service = (*serviceImpl)(nil)

// NewService creates the session service. m may be nil.
func NewService(
	profileStore store.ProfileStore,
	sessionStore store.SessionStore,
	txRunner store.TxRunner,
	aggregates AggregatesEngine,
	emitter events.EventEmitter,
	m *metrics.Metrics,
	logger *slog.Logger,
) (Service, error) {
	if profileStore == nil || sessionStore == nil {
		return nil, fmt.Errorf("session service requires profile and session stores")
	}
	if txRunner == nil {
		return nil, fmt.Errorf("session service requires a transaction runner")
	}
	if aggregates == nil {
		return nil, fmt.Errorf("session service requires the aggregates engine")
	}
	if emitter == nil {
		return nil, fmt.Errorf("session service requires an event emitter")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &serviceImpl{
		profileStore: profileStore,
		sessionStore: sessionStore,
		txRunner:     txRunner,
		aggregates:   aggregates,
		emitter:      emitter,
		metrics:      m,
		logger:       logger.With(slog.String("component", "session_service")),
	}, nil
}

func (s *serviceImpl) Request(
	ctx context.Context,
	fromProfileID, toProfileID uuid.UUID,
	topic, problem string,
	startAt, endAt time.Time,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if fromProfileID == toProfileID {
		return nil, ErrSelfSession
	}

	// The recipient must exist; the acting profile was already resolved by
	// the caller.
	if _, err := s.profileStore.GetByID(ctx, toProfileID); err != nil {
		return nil, err
	}

	session, err := domain.NewSession(fromProfileID, toProfileID, topic, problem, startAt, endAt)
	if err != nil {
		return nil, err
	}

	if err := s.sessionStore.Create(ctx, session); err != nil {
		return nil, newError("request", "failed to create session", err)
	}

	log.Info("session requested",
		slog.String("session_id", session.ID.String()),
		slog.String("from_profile_id", fromProfileID.String()),
		slog.String("to_profile_id", toProfileID.String()))

	return session, nil
}

func (s *serviceImpl) Respond(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
	decision string,
) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if decision != DecisionAccepted && decision != DecisionDeclined {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDecision, decision)
	}

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.ToProfileID != actingProfileID {
		return nil, ErrNotRecipient
	}

	if decision == DecisionDeclined {
		if err := s.sessionStore.TransitionStatus(
			ctx, sessionID, domain.SessionStatusDeclined, domain.SessionStatusPending,
		); err != nil {
			return nil, err
		}
		s.recordTransition(domain.SessionStatusDeclined)
		return s.sessionStore.GetByID(ctx, sessionID)
	}

	// Accept commits first; the calendar event runs afterwards as a
	// background task so a slow or failing provider cannot block or revert
	// the decision.
	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		sessions := s.sessionStore.WithTx(tx)
		if err := sessions.TransitionStatus(
			ctx, sessionID, domain.SessionStatusAccepted, domain.SessionStatusPending,
		); err != nil {
			return err
		}
		return sessions.SetCalendarEvent(ctx, sessionID, "", domain.CalendarEventStatusPending)
	})
	if err != nil {
		return nil, err
	}
	s.recordTransition(domain.SessionStatusAccepted)

	event, err := events.NewTaskRequestEvent(
		task.TypeCalendarEvent,
		task.CalendarEventPayload{SessionID: sessionID.String()},
	)
	if err != nil {
		log.Error("failed to build calendar event request",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
	} else if err := s.emitter.EmitEvent(ctx, event); err != nil {
		// The acceptance stands; the event marker stays pending and can be
		// reconciled out of band.
		log.Error("failed to emit calendar event request",
			slog.String("session_id", sessionID.String()),
			slog.String("error", err.Error()))
	}

	log.Info("session request accepted",
		slog.String("session_id", sessionID.String()))

	return s.sessionStore.GetByID(ctx, sessionID)
}

func (s *serviceImpl) Cancel(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
) (*domain.Session, error) {
	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.FromProfileID != actingProfileID && session.ToProfileID != actingProfileID {
		return nil, ErrNotParticipant
	}

	if err := s.sessionStore.TransitionStatus(
		ctx, sessionID,
		domain.SessionStatusCancelled,
		domain.SessionStatusPending, domain.SessionStatusAccepted,
	); err != nil {
		return nil, err
	}
	s.recordTransition(domain.SessionStatusCancelled)

	return s.sessionStore.GetByID(ctx, sessionID)
}

func (s *serviceImpl) Complete(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessionStore.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	err = s.txRunner.RunInTransaction(ctx, func(ctx context.Context, tx *sql.Tx) error {
		if err := s.sessionStore.WithTx(tx).TransitionStatus(
			ctx, sessionID, domain.SessionStatusCompleted, domain.SessionStatusAccepted,
		); err != nil {
			return err
		}
		// The mentor's delivered-session count changed; recompute before the
		// commit so readers never see the transition without the counters.
		_, err := s.aggregates.Recalculate(ctx, tx, session.ToProfileID)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.recordTransition(domain.SessionStatusCompleted)
	s.aggregates.InvalidateStats(ctx, session.ToProfileID)

	log.Info("session completed",
		slog.String("session_id", sessionID.String()),
		slog.String("mentor_profile_id", session.ToProfileID.String()))

	return s.sessionStore.GetByID(ctx, sessionID)
}

func (s *serviceImpl) List(
	ctx context.Context,
	profileID uuid.UUID,
	status domain.SessionStatus,
	page, limit int,
) ([]*domain.Session, int, error) {
	if status != "" && !domain.IsValidSessionStatus(status) {
		return nil, 0, fmt.Errorf("%w: %q", domain.ErrInvalidSessionStatus, status)
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	offset := (page - 1) * limit

	sessions, total, err := s.sessionStore.ListForProfile(ctx, profileID, status, limit, offset)
	if err != nil {
		return nil, 0, newError("list", "failed to list sessions", err)
	}
	return sessions, total, nil
}

func (s *serviceImpl) CompleteDue(ctx context.Context, before time.Time, limit int) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ids, err := s.sessionStore.FindCompletable(ctx, before, limit)
	if err != nil {
		return 0, newError("complete_due", "failed to find completable sessions", err)
	}

	completed := 0
	for _, id := range ids {
		if _, err := s.Complete(ctx, id); err != nil {
			// A concurrent cancel or an earlier sweep may have moved the
			// session on; that is not a sweep failure.
			if store.IsNotFoundError(err) || errors.Is(err, store.ErrInvalidTransition) {
				continue
			}
			log.Error("failed to complete overdue session",
				slog.String("session_id", id.String()),
				slog.String("error", err.Error()))
			continue
		}
		completed++
	}
	return completed, nil
}

func (s *serviceImpl) recordTransition(to domain.SessionStatus) {
	if s.metrics != nil {
		s.metrics.SessionTransitions.WithLabelValues(string(to)).Inc()
	}
}
