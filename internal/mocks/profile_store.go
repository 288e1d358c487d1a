package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// MockProfileStore implements store.ProfileStore for testing.
type MockProfileStore struct {
	CreateFn           func(ctx context.Context, profile *domain.Profile) error
	GetByIDFn          func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByUserIDFn      func(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)
	GetByIDForUpdateFn func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpdateAggregatesFn func(ctx context.Context, stats domain.ProfileStats) error

	// Default responses when the corresponding Fn is nil.
	Profile *domain.Profile
	Err     error

	// UpdatedStats records every UpdateAggregates call.
	UpdatedStats []domain.ProfileStats
}

var _ store.ProfileStore = (*MockProfileStore)(nil)

func (m *MockProfileStore) Create(ctx context.Context, profile *domain.Profile) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, profile)
	}
	return m.Err
}

func (m *MockProfileStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Profile, nil
}

func (m *MockProfileStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error) {
	if m.GetByUserIDFn != nil {
		return m.GetByUserIDFn(ctx, userID)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Profile, nil
}

func (m *MockProfileStore) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Profile, nil
}

func (m *MockProfileStore) UpdateAggregates(ctx context.Context, stats domain.ProfileStats) error {
	m.UpdatedStats = append(m.UpdatedStats, stats)
	if m.UpdateAggregatesFn != nil {
		return m.UpdateAggregatesFn(ctx, stats)
	}
	return m.Err
}

// WithTx returns the mock itself so transactional flows can be exercised
// without a real database.
func (m *MockProfileStore) WithTx(_ *sql.Tx) store.ProfileStore {
	return m
}
