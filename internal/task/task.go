package task

import (
	"context"

	"github.com/google/uuid"
)

// TypeCalendarEvent is the task type for creating a calendar event after a
// session request is accepted.
const TypeCalendarEvent = "calendar_event"

// Task is a unit of background work processed by the Runner.
type Task interface {
	// ID returns the task's unique identifier.
	ID() uuid.UUID

	// Type returns the task type identifier.
	Type() string

	// Execute runs the task logic. Execute is responsible for its own
	// retries; an error returned here marks the task failed.
	Execute(ctx context.Context) error
}
