package mocks

import (
	"context"
	"sync"

	"github.com/mentorhub/mentorhub-api/internal/events"
)

// MockEventEmitter implements events.EventEmitter for testing, recording
// every emitted event.
type MockEventEmitter struct {
	EmitFn func(ctx context.Context, event *events.TaskRequestEvent) error

	Err error

	mu     sync.Mutex
	Events []*events.TaskRequestEvent
}

var _ events.EventEmitter = (*MockEventEmitter)(nil)

func (m *MockEventEmitter) EmitEvent(ctx context.Context, event *events.TaskRequestEvent) error {
	m.mu.Lock()
	m.Events = append(m.Events, event)
	m.mu.Unlock()

	if m.EmitFn != nil {
		return m.EmitFn(ctx, event)
	}
	return m.Err
}
