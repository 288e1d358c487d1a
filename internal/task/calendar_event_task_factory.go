package task

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/platform/calendar"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// CalendarEventTaskFactory builds CalendarEventTasks with their shared
// dependencies pre-bound, so the event handler only needs a session ID.
type CalendarEventTaskFactory struct {
	sessionStore store.SessionStore
	profileStore store.ProfileStore
	client       calendar.Client
	metrics      *metrics.Metrics
	logger       *slog.Logger
}

// NewCalendarEventTaskFactory creates a factory for calendar event tasks.
func NewCalendarEventTaskFactory(
	sessionStore store.SessionStore,
	profileStore store.ProfileStore,
	client calendar.Client,
	m *metrics.Metrics,
	logger *slog.Logger,
) *CalendarEventTaskFactory {
	return &CalendarEventTaskFactory{
		sessionStore: sessionStore,
		profileStore: profileStore,
		client:       client,
		metrics:      m,
		logger:       logger,
	}
}

// CreateTask builds a task that creates the calendar event for sessionID.
func (f *CalendarEventTaskFactory) CreateTask(sessionID uuid.UUID) (Task, error) {
	return NewCalendarEventTask(
		sessionID,
		f.sessionStore,
		f.profileStore,
		f.client,
		f.metrics,
		f.logger,
	)
}
