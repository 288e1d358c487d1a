package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// MockReviewStore implements store.ReviewStore for testing.
type MockReviewStore struct {
	CreateFn                 func(ctx context.Context, review *domain.Review) error
	GetByIDFn                func(ctx context.Context, id uuid.UUID) (*domain.Review, error)
	ListForMentorFn          func(ctx context.Context, profileID uuid.UUID, limit, offset int) ([]*domain.Review, int, error)
	RatingSummaryForMentorFn func(ctx context.Context, profileID uuid.UUID) (store.RatingSummary, error)

	// Default responses when the corresponding Fn is nil.
	Review  *domain.Review
	Reviews []*domain.Review
	Total   int
	Summary store.RatingSummary
	Err     error

	// Created records every Create call.
	Created []*domain.Review
}

var _ store.ReviewStore = (*MockReviewStore)(nil)

func (m *MockReviewStore) Create(ctx context.Context, review *domain.Review) error {
	m.Created = append(m.Created, review)
	if m.CreateFn != nil {
		return m.CreateFn(ctx, review)
	}
	return m.Err
}

func (m *MockReviewStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Review, nil
}

func (m *MockReviewStore) ListForMentor(
	ctx context.Context,
	profileID uuid.UUID,
	limit, offset int,
) ([]*domain.Review, int, error) {
	if m.ListForMentorFn != nil {
		return m.ListForMentorFn(ctx, profileID, limit, offset)
	}
	if m.Err != nil {
		return nil, 0, m.Err
	}
	return m.Reviews, m.Total, nil
}

func (m *MockReviewStore) RatingSummaryForMentor(
	ctx context.Context,
	profileID uuid.UUID,
) (store.RatingSummary, error) {
	if m.RatingSummaryForMentorFn != nil {
		return m.RatingSummaryForMentorFn(ctx, profileID)
	}
	if m.Err != nil {
		return store.RatingSummary{}, m.Err
	}
	return m.Summary, nil
}

// WithTx returns the mock itself so transactional flows can be exercised
// without a real database.
func (m *MockReviewStore) WithTx(_ *sql.Tx) store.ReviewStore {
	return m
}
