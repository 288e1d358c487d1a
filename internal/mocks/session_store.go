package mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// TransitionCall records one TransitionStatus invocation.
type TransitionCall struct {
	ID   uuid.UUID
	To   domain.SessionStatus
	From []domain.SessionStatus
}

// CalendarEventCall records one SetCalendarEvent invocation.
type CalendarEventCall struct {
	ID     uuid.UUID
	Ref    string
	Status domain.CalendarEventStatus
}

// MockSessionStore implements store.SessionStore for testing.
type MockSessionStore struct {
	CreateFn           func(ctx context.Context, session *domain.Session) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	TransitionStatusFn func(ctx context.Context, id uuid.UUID, to domain.SessionStatus, from ...domain.SessionStatus) error
	SetCalendarEventFn func(ctx context.Context, id uuid.UUID, ref string, status domain.CalendarEventStatus) error
	ListForProfileFn   func(ctx context.Context, profileID uuid.UUID, status domain.SessionStatus, limit, offset int) ([]*domain.Session, int, error)
	FindCompletableFn  func(ctx context.Context, before time.Time, limit int) ([]uuid.UUID, error)
	CountForMentorFn   func(ctx context.Context, profileID uuid.UUID) (int, error)

	// Default responses when the corresponding Fn is nil.
	Session     *domain.Session
	Sessions    []*domain.Session
	Total       int
	MentorCount int
	Err         error

	// Call records for verification.
	Created        []*domain.Session
	Transitions    []TransitionCall
	CalendarEvents []CalendarEventCall
}

var _ store.SessionStore = (*MockSessionStore)(nil)

func (m *MockSessionStore) Create(ctx context.Context, session *domain.Session) error {
	m.Created = append(m.Created, session)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, session)
	}
	return m.Err
}

func (m *MockSessionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Session, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Session, nil
}

func (m *MockSessionStore) TransitionStatus(
	ctx context.Context,
	id uuid.UUID,
	to domain.SessionStatus,
	from ...domain.SessionStatus,
) error {
	m.Transitions = append(m.Transitions, TransitionCall{ID: id, To: to, From: from})
	if m.TransitionStatusFn != nil {
		return m.TransitionStatusFn(ctx, id, to, from...)
	}
	return m.Err
}

func (m *MockSessionStore) SetCalendarEvent(
	ctx context.Context,
	id uuid.UUID,
	ref string,
	status domain.CalendarEventStatus,
) error {
	m.CalendarEvents = append(m.CalendarEvents, CalendarEventCall{ID: id, Ref: ref, Status: status})
	if m.SetCalendarEventFn != nil {
		return m.SetCalendarEventFn(ctx, id, ref, status)
	}
	return m.Err
}

func (m *MockSessionStore) ListForProfile(
	ctx context.Context,
	profileID uuid.UUID,
	status domain.SessionStatus,
	limit, offset int,
) ([]*domain.Session, int, error) {
	if m.ListForProfileFn != nil {
		return m.ListForProfileFn(ctx, profileID, status, limit, offset)
	}
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Sessions, m.Total, nil
}

func (m *MockSessionStore) FindCompletable(
	ctx context.Context,
	before time.Time,
	limit int,
) ([]uuid.UUID, error) {
	if m.FindCompletableFn != nil {
		return m.FindCompletableFn(ctx, before, limit)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	ids := make([]uuid.UUID, 0, len(m.Sessions))
	for _, s := range m.Sessions {
		ids = append(ids, s.ID)
	}
	return ids, nil
}

func (m *MockSessionStore) CountForMentor(ctx context.Context, profileID uuid.UUID) (int, error) {
	if m.CountForMentorFn != nil {
		return m.CountForMentorFn(ctx, profileID)
	}
	if m.Err != nil {
		return 0, m.Err
	}
	return m.MentorCount, nil
}

// WithTx returns the mock itself so transactional flows can be exercised
// without a real database.
func (m *MockSessionStore) WithTx(_ *sql.Tx) store.SessionStore {
	return m
}
