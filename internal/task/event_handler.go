package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/events"
)

// TaskFactory builds a task for the session named in an event payload.
type TaskFactory interface {
	CreateTask(sessionID uuid.UUID) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	Submit(ctx context.Context, t Task) error
}

// CalendarEventHandler turns calendar event requests emitted by the session
// service into queued tasks.
type CalendarEventHandler struct {
	factory   TaskFactory
	submitter TaskSubmitter
	logger    *slog.Logger
}

// Verify CalendarEventHandler implements events.EventHandler.
var _ events.EventHandler = (*CalendarEventHandler)(nil)

// NewCalendarEventHandler creates the handler that bridges emitted events to
// the task runner.
func NewCalendarEventHandler(
	factory TaskFactory,
	submitter TaskSubmitter,
	logger *slog.Logger,
) *CalendarEventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CalendarEventHandler{
		factory:   factory,
		submitter: submitter,
		logger:    logger.With(slog.String("component", "calendar_event_handler")),
	}
}

// CalendarEventPayload is the payload the session service attaches to
// calendar event requests.
type CalendarEventPayload struct {
	SessionID string `json:"session_id"`
}

// HandleEvent implements events.EventHandler. Events of other types are
// ignored so additional handlers can share the same emitter.
func (h *CalendarEventHandler) HandleEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	if event.Type != TypeCalendarEvent {
		return nil
	}

	var payload CalendarEventPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	sessionID, err := uuid.Parse(payload.SessionID)
	if err != nil {
		return fmt.Errorf("invalid session ID in payload: %w", err)
	}

	t, err := h.factory.CreateTask(sessionID)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.submitter.Submit(ctx, t); err != nil {
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Debug("calendar event task queued",
		slog.String("task_id", t.ID().String()),
		slog.String("session_id", sessionID.String()))
	return nil
}
