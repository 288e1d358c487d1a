package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// TaskRequestEvent asks the task runner to enqueue a piece of background
// work. Services emit these after their transaction commits so that the
// worker never observes uncommitted state.
type TaskRequestEvent struct {
	// ID uniquely identifies this event.
	ID uuid.UUID `json:"id"`

	// Type names the task that should be created.
	Type string `json:"type"`

	// Payload carries the task-specific data as JSON.
	Payload json.RawMessage `json:"payload"`

	// CreatedAt is when the event was emitted.
	CreatedAt time.Time `json:"created_at"`
}

// NewTaskRequestEvent builds a TaskRequestEvent, serializing payload to JSON.
func NewTaskRequestEvent(eventType string, payload interface{}) (*TaskRequestEvent, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	return &TaskRequestEvent{
		ID:        uuid.New(),
		Type:      eventType,
		Payload:   raw,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// UnmarshalPayload decodes the event payload into v.
func (e *TaskRequestEvent) UnmarshalPayload(v interface{}) error {
	return json.Unmarshal(e.Payload, v)
}

// EventHandler processes emitted events.
type EventHandler interface {
	// HandleEvent processes the given event. An error means the event could
	// not be handled; the emitter does not retry.
	HandleEvent(ctx context.Context, event *TaskRequestEvent) error
}

// EventEmitter publishes events to registered handlers. It decouples the
// service layer from the task runner.
type EventEmitter interface {
	// EmitEvent delivers the event to all registered handlers.
	EmitEvent(ctx context.Context, event *TaskRequestEvent) error
}
