package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// RatingSummary is the aggregate over a mentor's reviews. Average is exactly
// 0 when Count is 0.
type RatingSummary struct {
	Count   int
	Average float64
}

// ReviewStore defines the interface for review data persistence.
// Reviews are immutable and one-to-one with sessions.
type ReviewStore interface {
	// Create saves a new review to the store.
	// Returns validation errors from the domain Review if data is invalid.
	// Returns ErrReviewExists if the session already has a review.
	// Returns ErrInvalidEntity if the referenced session or profile does not
	// exist (foreign key violation).
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its unique ID.
	// Returns ErrReviewNotFound if the review does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Review, error)

	// ListForMentor retrieves the reviews left on a mentor profile's
	// sessions, newest first. Filtering, ordering and the total count are all
	// pushed to SQL so no more than one page of records is ever loaded.
	ListForMentor(
		ctx context.Context,
		profileID uuid.UUID,
		limit, offset int,
	) ([]*domain.Review, int, error)

	// RatingSummaryForMentor computes the review count and arithmetic mean
	// rating over the mentor profile's reviews in a single query. The average
	// is 0 (not NULL, not NaN) when the profile has no reviews.
	RatingSummaryForMentor(ctx context.Context, profileID uuid.UUID) (RatingSummary, error)

	// WithTx returns a new ReviewStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller (typically a service).
	WithTx(tx *sql.Tx) ReviewStore
}
