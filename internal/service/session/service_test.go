package session

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/mocks"
	"github.com/mentorhub/mentorhub-api/internal/store"
	"github.com/mentorhub/mentorhub-api/internal/task"
)

type fixture struct {
	profiles   *mocks.MockProfileStore
	sessions   *mocks.MockSessionStore
	txRunner   *mocks.MockTxRunner
	aggregates *mocks.MockAggregatesEngine
	emitter    *mocks.MockEventEmitter
	svc        Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		profiles:   &mocks.MockProfileStore{},
		sessions:   &mocks.MockSessionStore{},
		txRunner:   &mocks.MockTxRunner{},
		aggregates: &mocks.MockAggregatesEngine{},
		emitter:    &mocks.MockEventEmitter{},
	}

	svc, err := NewService(
		f.profiles, f.sessions, f.txRunner, f.aggregates, f.emitter, nil, slog.Default())
	require.NoError(t, err)
	f.svc = svc
	return f
}

func pendingSession(t *testing.T) *domain.Session {
	t.Helper()
	start := time.Now().UTC().Add(48 * time.Hour)
	session, err := domain.NewSession(
		uuid.New(), uuid.New(),
		"Code review habits", "How do I give useful review feedback?",
		start, start.Add(time.Hour))
	require.NoError(t, err)
	return session
}

func TestService_Request(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	start := time.Now().UTC().Add(48 * time.Hour)

	t.Run("creates a pending session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		mentor, err := domain.NewProfile(uuid.New(), "Mentor", "mentor@example.com")
		require.NoError(t, err)
		f.profiles.Profile = mentor

		fromID := uuid.New()
		session, err := f.svc.Request(ctx, fromID, mentor.ID,
			"Go concurrency", "My worker pool deadlocks", start, start.Add(time.Hour))
		require.NoError(t, err)

		assert.Equal(t, domain.SessionStatusPending, session.Status)
		assert.Equal(t, fromID, session.FromProfileID)
		assert.Equal(t, mentor.ID, session.ToProfileID)
		require.Len(t, f.sessions.Created, 1)
	})

	t.Run("rejects a self request", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		profileID := uuid.New()
		_, err := f.svc.Request(ctx, profileID, profileID,
			"Topic", "Problem", start, start.Add(time.Hour))
		require.ErrorIs(t, err, ErrSelfSession)
		assert.Empty(t, f.sessions.Created)
	})

	t.Run("unknown recipient returns not found", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.profiles.Err = store.ErrProfileNotFound

		_, err := f.svc.Request(ctx, uuid.New(), uuid.New(),
			"Topic", "Problem", start, start.Add(time.Hour))
		require.ErrorIs(t, err, store.ErrProfileNotFound)
	})

	t.Run("rejects a schedule that ends before it starts", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.profiles.Profile = &domain.Profile{ID: uuid.New()}

		_, err := f.svc.Request(ctx, uuid.New(), f.profiles.Profile.ID,
			"Topic", "Problem", start, start.Add(-time.Hour))
		require.ErrorIs(t, err, domain.ErrValidation)
		assert.Empty(t, f.sessions.Created)
	})

	t.Run("rejects empty topic", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.profiles.Profile = &domain.Profile{ID: uuid.New()}

		_, err := f.svc.Request(ctx, uuid.New(), f.profiles.Profile.ID,
			"", "Problem", start, start.Add(time.Hour))
		require.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestService_Respond(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("accept transitions, marks the event pending and emits", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session

		_, err := f.svc.Respond(ctx, session.ID, session.ToProfileID, DecisionAccepted)
		require.NoError(t, err)

		require.Len(t, f.sessions.Transitions, 1)
		assert.Equal(t, domain.SessionStatusAccepted, f.sessions.Transitions[0].To)
		assert.Equal(t, []domain.SessionStatus{domain.SessionStatusPending}, f.sessions.Transitions[0].From)

		require.Len(t, f.sessions.CalendarEvents, 1)
		assert.Equal(t, domain.CalendarEventStatusPending, f.sessions.CalendarEvents[0].Status)

		assert.Equal(t, 1, f.txRunner.Calls)

		require.Len(t, f.emitter.Events, 1)
		assert.Equal(t, task.TypeCalendarEvent, f.emitter.Events[0].Type)
		var payload task.CalendarEventPayload
		require.NoError(t, f.emitter.Events[0].UnmarshalPayload(&payload))
		assert.Equal(t, session.ID.String(), payload.SessionID)
	})

	t.Run("decline transitions without a calendar event", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session

		_, err := f.svc.Respond(ctx, session.ID, session.ToProfileID, DecisionDeclined)
		require.NoError(t, err)

		require.Len(t, f.sessions.Transitions, 1)
		assert.Equal(t, domain.SessionStatusDeclined, f.sessions.Transitions[0].To)
		assert.Empty(t, f.sessions.CalendarEvents)
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("only the requested mentor may respond", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session

		_, err := f.svc.Respond(ctx, session.ID, session.FromProfileID, DecisionAccepted)
		require.ErrorIs(t, err, ErrNotRecipient)
		assert.Empty(t, f.sessions.Transitions)
	})

	t.Run("rejects unknown decisions", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session

		_, err := f.svc.Respond(ctx, session.ID, session.ToProfileID, "maybe")
		require.ErrorIs(t, err, ErrInvalidDecision)
	})

	t.Run("a lost transition race surfaces as invalid transition", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session
		f.sessions.TransitionStatusFn = func(
			context.Context, uuid.UUID, domain.SessionStatus, ...domain.SessionStatus,
		) error {
			return store.ErrInvalidTransition
		}

		_, err := f.svc.Respond(ctx, session.ID, session.ToProfileID, DecisionAccepted)
		require.ErrorIs(t, err, store.ErrInvalidTransition)
		assert.Empty(t, f.emitter.Events)
	})

	t.Run("an emit failure does not revert the acceptance", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session
		f.emitter.Err = errors.New("queue is full")

		_, err := f.svc.Respond(ctx, session.ID, session.ToProfileID, DecisionAccepted)
		require.NoError(t, err)
		require.Len(t, f.sessions.Transitions, 1)
		assert.Equal(t, domain.SessionStatusAccepted, f.sessions.Transitions[0].To)
	})
}

func TestService_Cancel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("either participant may cancel", func(t *testing.T) {
		t.Parallel()

		for _, side := range []string{"from", "to"} {
			f := newFixture(t)
			session := pendingSession(t)
			f.sessions.Session = session

			actor := session.FromProfileID
			if side == "to" {
				actor = session.ToProfileID
			}

			_, err := f.svc.Cancel(ctx, session.ID, actor)
			require.NoError(t, err, side)
			require.Len(t, f.sessions.Transitions, 1)
			assert.Equal(t, domain.SessionStatusCancelled, f.sessions.Transitions[0].To)
			assert.ElementsMatch(t,
				[]domain.SessionStatus{domain.SessionStatusPending, domain.SessionStatusAccepted},
				f.sessions.Transitions[0].From)
		}
	})

	t.Run("outsiders may not cancel", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session

		_, err := f.svc.Cancel(ctx, session.ID, uuid.New())
		require.ErrorIs(t, err, ErrNotParticipant)
		assert.Empty(t, f.sessions.Transitions)
	})

	t.Run("unknown session returns not found", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.sessions.Err = store.ErrSessionNotFound

		_, err := f.svc.Cancel(ctx, uuid.New(), uuid.New())
		require.ErrorIs(t, err, store.ErrSessionNotFound)
	})
}

func TestService_Complete(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("completes and recalculates the mentor aggregates", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		session.Status = domain.SessionStatusAccepted
		f.sessions.Session = session

		_, err := f.svc.Complete(ctx, session.ID)
		require.NoError(t, err)

		require.Len(t, f.sessions.Transitions, 1)
		assert.Equal(t, domain.SessionStatusCompleted, f.sessions.Transitions[0].To)
		assert.Equal(t, []domain.SessionStatus{domain.SessionStatusAccepted}, f.sessions.Transitions[0].From)

		assert.Equal(t, []uuid.UUID{session.ToProfileID}, f.aggregates.Recalculated)
		assert.Equal(t, []uuid.UUID{session.ToProfileID}, f.aggregates.Invalidated)
		assert.Equal(t, 1, f.txRunner.Calls)
	})

	t.Run("a failed transition skips recalculation and invalidation", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		f.sessions.Session = session
		f.sessions.TransitionStatusFn = func(
			context.Context, uuid.UUID, domain.SessionStatus, ...domain.SessionStatus,
		) error {
			return store.ErrInvalidTransition
		}

		_, err := f.svc.Complete(ctx, session.ID)
		require.ErrorIs(t, err, store.ErrInvalidTransition)
		assert.Empty(t, f.aggregates.Recalculated)
		assert.Empty(t, f.aggregates.Invalidated)
	})

	t.Run("a recalculation failure rolls the completion back", func(t *testing.T) {
		t.Parallel()

		recalcErr := errors.New("lock timeout")
		f := newFixture(t)
		session := pendingSession(t)
		session.Status = domain.SessionStatusAccepted
		f.sessions.Session = session
		f.aggregates.Err = recalcErr

		_, err := f.svc.Complete(ctx, session.ID)
		require.ErrorIs(t, err, recalcErr)
		assert.Empty(t, f.aggregates.Invalidated)
	})
}

func TestService_List(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("passes the filter and pagination through", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		profileID := uuid.New()

		var gotStatus domain.SessionStatus
		var gotLimit, gotOffset int
		f.sessions.ListForProfileFn = func(
			_ context.Context, _ uuid.UUID, status domain.SessionStatus, limit, offset int,
		) ([]*domain.Session, int, error) {
			gotStatus, gotLimit, gotOffset = status, limit, offset
			return []*domain.Session{pendingSession(t)}, 41, nil
		}

		sessions, total, err := f.svc.List(ctx, profileID, domain.SessionStatusPending, 3, 10)
		require.NoError(t, err)
		assert.Len(t, sessions, 1)
		assert.Equal(t, 41, total)
		assert.Equal(t, domain.SessionStatusPending, gotStatus)
		assert.Equal(t, 10, gotLimit)
		assert.Equal(t, 20, gotOffset)
	})

	t.Run("clamps page and limit to sane values", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		var gotLimit, gotOffset int
		f.sessions.ListForProfileFn = func(
			_ context.Context, _ uuid.UUID, _ domain.SessionStatus, limit, offset int,
		) ([]*domain.Session, int, error) {
			gotLimit, gotOffset = limit, offset
			return nil, 0, nil
		}

		_, _, err := f.svc.List(ctx, uuid.New(), "", 0, 0)
		require.NoError(t, err)
		assert.Equal(t, 20, gotLimit)
		assert.Equal(t, 0, gotOffset)
	})

	t.Run("rejects unknown status filters", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		_, _, err := f.svc.List(ctx, uuid.New(), "archived", 1, 10)
		require.ErrorIs(t, err, domain.ErrInvalidSessionStatus)
	})
}

func TestService_CompleteDue(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("completes every overdue session", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		first := pendingSession(t)
		first.Status = domain.SessionStatusAccepted
		second := pendingSession(t)
		second.Status = domain.SessionStatusAccepted
		f.sessions.Sessions = []*domain.Session{first, second}
		f.sessions.GetByIDFn = func(_ context.Context, id uuid.UUID) (*domain.Session, error) {
			if id == first.ID {
				return first, nil
			}
			return second, nil
		}

		completed, err := f.svc.CompleteDue(ctx, time.Now().UTC(), 50)
		require.NoError(t, err)
		assert.Equal(t, 2, completed)
		assert.Len(t, f.sessions.Transitions, 2)
	})

	t.Run("a lost race does not count or fail the sweep", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		session := pendingSession(t)
		session.Status = domain.SessionStatusAccepted
		f.sessions.Sessions = []*domain.Session{session}
		f.sessions.Session = session
		f.sessions.TransitionStatusFn = func(
			context.Context, uuid.UUID, domain.SessionStatus, ...domain.SessionStatus,
		) error {
			return store.ErrInvalidTransition
		}

		completed, err := f.svc.CompleteDue(ctx, time.Now().UTC(), 50)
		require.NoError(t, err)
		assert.Equal(t, 0, completed)
	})

	t.Run("propagates lookup failures", func(t *testing.T) {
		t.Parallel()

		f := newFixture(t)
		f.sessions.FindCompletableFn = func(context.Context, time.Time, int) ([]uuid.UUID, error) {
			return nil, errors.New("database down")
		}

		_, err := f.svc.CompleteDue(ctx, time.Now().UTC(), 50)
		require.Error(t, err)
	})
}
