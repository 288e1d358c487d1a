package task

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/events"
)

type fakeFactory struct {
	task Task
	err  error

	sessionIDs []uuid.UUID
}

func (f *fakeFactory) CreateTask(sessionID uuid.UUID) (Task, error) {
	f.sessionIDs = append(f.sessionIDs, sessionID)
	if f.err != nil {
		return nil, f.err
	}
	return f.task, nil
}

type fakeSubmitter struct {
	err       error
	submitted []Task
}

func (f *fakeSubmitter) Submit(_ context.Context, t Task) error {
	f.submitted = append(f.submitted, t)
	return f.err
}

func TestCalendarEventHandler_HandleEvent(t *testing.T) {
	t.Parallel()

	newCalendarEvent := func(t *testing.T, sessionID string) *events.TaskRequestEvent {
		t.Helper()
		event, err := events.NewTaskRequestEvent(
			TypeCalendarEvent,
			CalendarEventPayload{SessionID: sessionID},
		)
		require.NoError(t, err)
		return event
	}

	t.Run("creates and submits a task for the session", func(t *testing.T) {
		t.Parallel()

		sessionID := uuid.New()
		factory := &fakeFactory{task: newFakeTask(nil)}
		submitter := &fakeSubmitter{}
		handler := NewCalendarEventHandler(factory, submitter, slog.Default())

		err := handler.HandleEvent(context.Background(), newCalendarEvent(t, sessionID.String()))
		require.NoError(t, err)

		require.Len(t, factory.sessionIDs, 1)
		assert.Equal(t, sessionID, factory.sessionIDs[0])
		assert.Len(t, submitter.submitted, 1)
	})

	t.Run("ignores events of other types", func(t *testing.T) {
		t.Parallel()

		factory := &fakeFactory{task: newFakeTask(nil)}
		submitter := &fakeSubmitter{}
		handler := NewCalendarEventHandler(factory, submitter, slog.Default())

		event, err := events.NewTaskRequestEvent("something_else", map[string]string{})
		require.NoError(t, err)

		require.NoError(t, handler.HandleEvent(context.Background(), event))
		assert.Empty(t, factory.sessionIDs)
		assert.Empty(t, submitter.submitted)
	})

	t.Run("rejects a malformed session ID", func(t *testing.T) {
		t.Parallel()

		handler := NewCalendarEventHandler(&fakeFactory{}, &fakeSubmitter{}, slog.Default())
		err := handler.HandleEvent(context.Background(), newCalendarEvent(t, "not-a-uuid"))
		assert.Error(t, err)
	})

	t.Run("propagates submit failures", func(t *testing.T) {
		t.Parallel()

		submitErr := errors.New("queue is full")
		factory := &fakeFactory{task: newFakeTask(nil)}
		handler := NewCalendarEventHandler(factory, &fakeSubmitter{err: submitErr}, slog.Default())

		err := handler.HandleEvent(context.Background(), newCalendarEvent(t, uuid.New().String()))
		require.ErrorIs(t, err, submitErr)
	})
}
