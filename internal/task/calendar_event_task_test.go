package task

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/mocks"
	"github.com/mentorhub/mentorhub-api/internal/platform/calendar"
)

func acceptedSession(t *testing.T) *domain.Session {
	t.Helper()
	start := time.Now().UTC().Add(24 * time.Hour)
	session, err := domain.NewSession(
		uuid.New(),
		uuid.New(),
		"Go profiling",
		"My service's allocations look wrong",
		start,
		start.Add(time.Hour),
	)
	require.NoError(t, err)
	session.Status = domain.SessionStatusAccepted
	session.CalendarEventStatus = domain.CalendarEventStatusPending
	return session
}

func profileWithEmail(t *testing.T, email string) *domain.Profile {
	t.Helper()
	profile, err := domain.NewProfile(uuid.New(), "Test User", email)
	require.NoError(t, err)
	return profile
}

func TestCalendarEventTask_Execute(t *testing.T) {
	t.Parallel()

	t.Run("creates event and records the reference", func(t *testing.T) {
		t.Parallel()

		session := acceptedSession(t)
		sessions := &mocks.MockSessionStore{Session: session}
		profiles := &mocks.MockProfileStore{
			GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
				if id == session.FromProfileID {
					return profileWithEmail(t, "mentee@example.com"), nil
				}
				return profileWithEmail(t, "mentor@example.com"), nil
			},
		}
		client := &mocks.MockCalendarClient{Ref: &calendar.EventRef{ID: "evt_42"}}

		tk, err := NewCalendarEventTask(session.ID, sessions, profiles, client, nil, slog.Default())
		require.NoError(t, err)
		require.NoError(t, tk.Execute(context.Background()))

		require.Len(t, sessions.CalendarEvents, 1)
		assert.Equal(t, "evt_42", sessions.CalendarEvents[0].Ref)
		assert.Equal(t, domain.CalendarEventStatusCreated, sessions.CalendarEvents[0].Status)

		require.Equal(t, 1, client.Calls())
		input := client.Inputs[0]
		assert.Equal(t, "Mentoring session: Go profiling", input.Summary)
		assert.Equal(t, session.StartAt, input.Start)
		assert.ElementsMatch(t, []string{"mentee@example.com", "mentor@example.com"}, input.Attendees)
	})

	t.Run("marks the event failed after exhausting retries", func(t *testing.T) {
		t.Parallel()

		session := acceptedSession(t)
		sessions := &mocks.MockSessionStore{Session: session}
		profiles := &mocks.MockProfileStore{Profile: profileWithEmail(t, "someone@example.com")}
		client := &mocks.MockCalendarClient{Err: calendar.ErrProvider}

		tk, err := NewCalendarEventTask(session.ID, sessions, profiles, client, nil, slog.Default())
		require.NoError(t, err)
		tk.backoff = time.Millisecond

		err = tk.Execute(context.Background())
		require.ErrorIs(t, err, calendar.ErrProvider)

		assert.Equal(t, maxProviderAttempts, client.Calls())
		require.Len(t, sessions.CalendarEvents, 1)
		assert.Equal(t, "", sessions.CalendarEvents[0].Ref)
		assert.Equal(t, domain.CalendarEventStatusFailed, sessions.CalendarEvents[0].Status)
	})

	t.Run("retries transient provider failures", func(t *testing.T) {
		t.Parallel()

		session := acceptedSession(t)
		sessions := &mocks.MockSessionStore{Session: session}
		profiles := &mocks.MockProfileStore{Profile: profileWithEmail(t, "someone@example.com")}

		attempts := 0
		client := &mocks.MockCalendarClient{
			CreateEventFn: func(context.Context, calendar.EventInput) (*calendar.EventRef, error) {
				attempts++
				if attempts == 1 {
					return nil, calendar.ErrProvider
				}
				return &calendar.EventRef{ID: "evt_retry"}, nil
			},
		}

		tk, err := NewCalendarEventTask(session.ID, sessions, profiles, client, nil, slog.Default())
		require.NoError(t, err)
		tk.backoff = time.Millisecond

		require.NoError(t, tk.Execute(context.Background()))
		assert.Equal(t, 2, attempts)
		require.Len(t, sessions.CalendarEvents, 1)
		assert.Equal(t, domain.CalendarEventStatusCreated, sessions.CalendarEvents[0].Status)
	})

	t.Run("skips sessions that are no longer accepted", func(t *testing.T) {
		t.Parallel()

		session := acceptedSession(t)
		session.Status = domain.SessionStatusCancelled
		sessions := &mocks.MockSessionStore{Session: session}
		profiles := &mocks.MockProfileStore{}
		client := &mocks.MockCalendarClient{}

		tk, err := NewCalendarEventTask(session.ID, sessions, profiles, client, nil, slog.Default())
		require.NoError(t, err)

		require.NoError(t, tk.Execute(context.Background()))
		assert.Equal(t, 0, client.Calls())
		assert.Empty(t, sessions.CalendarEvents)
	})

	t.Run("rejects a nil session ID", func(t *testing.T) {
		t.Parallel()

		_, err := NewCalendarEventTask(
			uuid.Nil,
			&mocks.MockSessionStore{},
			&mocks.MockProfileStore{},
			&mocks.MockCalendarClient{},
			nil,
			slog.Default(),
		)
		assert.Error(t, err)
	})
}
