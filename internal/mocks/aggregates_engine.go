package mocks

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// MockAggregatesEngine is a test double for the aggregates recalculation
// engine consumed by the session and review services.
type MockAggregatesEngine struct {
	RecalculateFn func(ctx context.Context, tx *sql.Tx, profileID uuid.UUID) (domain.ProfileStats, error)

	// Default responses when RecalculateFn is nil.
	Stats domain.ProfileStats
	Err   error

	// Call records for verification.
	Recalculated []uuid.UUID
	Invalidated  []uuid.UUID
}

func (m *MockAggregatesEngine) Recalculate(
	ctx context.Context,
	tx *sql.Tx,
	profileID uuid.UUID,
) (domain.ProfileStats, error) {
	m.Recalculated = append(m.Recalculated, profileID)
	if m.RecalculateFn != nil {
		return m.RecalculateFn(ctx, tx, profileID)
	}
	if m.Err != nil {
		return domain.ProfileStats{}, m.Err
	}
	return m.Stats, nil
}

func (m *MockAggregatesEngine) InvalidateStats(_ context.Context, profileID uuid.UUID) {
	m.Invalidated = append(m.Invalidated, profileID)
}
