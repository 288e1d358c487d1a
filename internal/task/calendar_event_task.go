package task

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/platform/calendar"
	"github.com/mentorhub/mentorhub-api/internal/platform/metrics"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// maxProviderAttempts bounds retries against the calendar provider within a
// single task execution. After the last attempt the session is marked failed
// and the acceptance stands.
const maxProviderAttempts = 3

// retryBackoff is the delay between provider attempts.
const retryBackoff = 2 * time.Second

// CalendarEventTask creates the calendar event for an accepted session and
// records the outcome on the session row.
type CalendarEventTask struct {
	id           uuid.UUID
	sessionID    uuid.UUID
	sessionStore store.SessionStore
	profileStore store.ProfileStore
	client       calendar.Client
	metrics      *metrics.Metrics
	logger       *slog.Logger
	backoff      time.Duration
}

// Verify CalendarEventTask implements Task.
var _ Task = (*CalendarEventTask)(nil)

// NewCalendarEventTask creates a task for the given session.
func NewCalendarEventTask(
	sessionID uuid.UUID,
	sessionStore store.SessionStore,
	profileStore store.ProfileStore,
	client calendar.Client,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*CalendarEventTask, error) {
	if sessionID == uuid.Nil {
		return nil, fmt.Errorf("session ID cannot be nil")
	}
	if sessionStore == nil || profileStore == nil || client == nil {
		return nil, fmt.Errorf("calendar event task requires stores and a provider client")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &CalendarEventTask{
		id:           uuid.New(),
		sessionID:    sessionID,
		sessionStore: sessionStore,
		profileStore: profileStore,
		client:       client,
		metrics:      m,
		logger:       logger.With(slog.String("component", "calendar_event_task")),
		backoff:      retryBackoff,
	}, nil
}

// ID implements Task.
func (t *CalendarEventTask) ID() uuid.UUID { return t.id }

// Type implements Task.
func (t *CalendarEventTask) Type() string { return TypeCalendarEvent }

// Execute loads the session and both participant profiles, asks the provider
// to create the event, and records the result. The session's status is never
// changed here; a provider failure leaves it accepted with the event marked
// failed.
func (t *CalendarEventTask) Execute(ctx context.Context) error {
	logger := t.logger.With(slog.String("session_id", t.sessionID.String()))

	session, err := t.sessionStore.GetByID(ctx, t.sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session: %w", err)
	}

	// The accept may have been followed by a cancel before the worker got
	// here. Only accepted sessions with a pending event marker need an event.
	if session.Status != domain.SessionStatusAccepted ||
		session.CalendarEventStatus != domain.CalendarEventStatusPending {
		logger.Info("skipping calendar event, session no longer eligible",
			slog.String("status", string(session.Status)),
			slog.String("calendar_event_status", string(session.CalendarEventStatus)))
		return nil
	}

	mentee, err := t.profileStore.GetByID(ctx, session.FromProfileID)
	if err != nil {
		return fmt.Errorf("failed to load requesting profile: %w", err)
	}
	mentor, err := t.profileStore.GetByID(ctx, session.ToProfileID)
	if err != nil {
		return fmt.Errorf("failed to load mentor profile: %w", err)
	}

	input := calendar.EventInput{
		Summary:     fmt.Sprintf("Mentoring session: %s", session.Topic),
		Description: session.Problem,
		Start:       session.StartAt,
		End:         session.EndAt,
		Attendees:   attendeeEmails(mentee, mentor),
	}

	ref, err := t.createWithRetry(ctx, input, logger)
	if err != nil {
		if t.metrics != nil {
			t.metrics.CalendarEvents.WithLabelValues("failed").Inc()
		}
		if markErr := t.sessionStore.SetCalendarEvent(
			ctx, session.ID, "", domain.CalendarEventStatusFailed,
		); markErr != nil {
			logger.Error("failed to record calendar event failure",
				slog.String("error", markErr.Error()))
		}
		return fmt.Errorf("calendar event creation failed: %w", err)
	}

	if err := t.sessionStore.SetCalendarEvent(
		ctx, session.ID, ref.ID, domain.CalendarEventStatusCreated,
	); err != nil {
		return fmt.Errorf("failed to record calendar event: %w", err)
	}

	if t.metrics != nil {
		t.metrics.CalendarEvents.WithLabelValues("created").Inc()
	}
	logger.Info("calendar event created", slog.String("event_ref", ref.ID))
	return nil
}

func (t *CalendarEventTask) createWithRetry(
	ctx context.Context,
	input calendar.EventInput,
	logger *slog.Logger,
) (*calendar.EventRef, error) {
	var lastErr error
	for attempt := 1; attempt <= maxProviderAttempts; attempt++ {
		ref, err := t.client.CreateEvent(ctx, input)
		if err == nil {
			return ref, nil
		}
		lastErr = err
		logger.Warn("calendar provider attempt failed",
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()))

		if attempt < maxProviderAttempts {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(t.backoff):
			}
		}
	}
	return nil, lastErr
}

func attendeeEmails(profiles ...*domain.Profile) []string {
	emails := make([]string, 0, len(profiles))
	for _, p := range profiles {
		if p.ContactEmail != "" {
			emails = append(emails, p.ContactEmail)
		}
	}
	return emails
}
