package mocks

import (
	"context"
	"sync"

	"github.com/mentorhub/mentorhub-api/internal/platform/calendar"
)

// MockCalendarClient implements calendar.Client for testing.
type MockCalendarClient struct {
	CreateEventFn func(ctx context.Context, input calendar.EventInput) (*calendar.EventRef, error)

	// Default responses when CreateEventFn is nil.
	Ref *calendar.EventRef
	Err error

	mu     sync.Mutex
	Inputs []calendar.EventInput
}

var _ calendar.Client = (*MockCalendarClient)(nil)

func (m *MockCalendarClient) CreateEvent(
	ctx context.Context,
	input calendar.EventInput,
) (*calendar.EventRef, error) {
	m.mu.Lock()
	m.Inputs = append(m.Inputs, input)
	m.mu.Unlock()

	if m.CreateEventFn != nil {
		return m.CreateEventFn(ctx, input)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Ref != nil {
		return m.Ref, nil
	}
	return &calendar.EventRef{ID: "evt_mock"}, nil
}

// Calls returns how many times CreateEvent was invoked.
func (m *MockCalendarClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Inputs)
}
