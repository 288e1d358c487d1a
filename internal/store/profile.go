package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// ProfileStore is the core's contract with the profile directory. The core
// resolves session/review participants through it and writes the derived
// aggregate counters back; it does not own profile field validation or any
// of the surrounding profile CRUD.
type ProfileStore interface {
	// Create saves a new profile to the store.
	// Returns validation errors from the domain Profile if data is invalid.
	Create(ctx context.Context, profile *domain.Profile) error

	// GetByID retrieves a profile by its unique ID.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// GetByUserID retrieves the profile owned by the given user account.
	// Returns ErrProfileNotFound if no profile exists for the user.
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Profile, error)

	// GetByIDForUpdate retrieves a profile with a row-level lock using
	// SELECT FOR UPDATE. This must be used within a transaction when the
	// caller intends to rewrite the aggregate counters, so that concurrent
	// recalculations for the same profile are serialized.
	// Returns ErrProfileNotFound if the profile does not exist.
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*domain.Profile, error)

	// UpdateAggregates rewrites the derived counters for a profile and stamps
	// the refresh time. The counters are a cache over the session/review
	// stores; only the recalculation engine calls this.
	// Returns ErrProfileNotFound if the profile does not exist.
	UpdateAggregates(ctx context.Context, stats domain.ProfileStats) error

	// WithTx returns a new ProfileStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ProfileStore
}
