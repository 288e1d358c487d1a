package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Rating bounds for reviews.
const (
	MinRating = 1
	MaxRating = 5
)

// Review-specific validation errors. All wrap ErrValidation so callers can
// classify them with a single errors.Is check.
var (
	// ErrReviewIDEmpty is returned when a review ID is empty or nil.
	ErrReviewIDEmpty = fmt.Errorf("%w: review ID cannot be empty", ErrValidation)

	// ErrReviewSessionEmpty is returned when a review's session ID is empty or nil.
	ErrReviewSessionEmpty = fmt.Errorf("%w: review session ID cannot be empty", ErrValidation)

	// ErrReviewFromEmpty is returned when a review's author profile ID is empty or nil.
	ErrReviewFromEmpty = fmt.Errorf("%w: review author profile ID cannot be empty", ErrValidation)

	// ErrReviewToEmpty is returned when a review's mentor profile ID is empty or nil.
	ErrReviewToEmpty = fmt.Errorf("%w: review mentor profile ID cannot be empty", ErrValidation)

	// ErrReviewContentEmpty is returned when a review's content is empty.
	ErrReviewContentEmpty = fmt.Errorf("%w: review content cannot be empty", ErrValidation)
)

// Review is mentee-authored feedback tied to exactly one completed session.
// FromProfileID and ToProfileID are denormalized from the session at creation
// time so mentor-scoped queries never need an application-side join. Reviews
// are immutable once created.
type Review struct {
	ID            uuid.UUID `json:"id"`
	SessionID     uuid.UUID `json:"session_id"`
	FromProfileID uuid.UUID `json:"from_profile_id"`
	ToProfileID   uuid.UUID `json:"to_profile_id"`
	Content       string    `json:"content"`
	Rating        int       `json:"rating"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewReview creates a new Review for the given session. It generates a new
// UUID for the review ID and sets the creation timestamp. Returns an error
// if validation fails, including when the rating is out of bounds.
func NewReview(
	sessionID, fromProfileID, toProfileID uuid.UUID,
	content string,
	rating int,
) (*Review, error) {
	review := &Review{
		ID:            uuid.New(),
		SessionID:     sessionID,
		FromProfileID: fromProfileID,
		ToProfileID:   toProfileID,
		Content:       content,
		Rating:        rating,
		CreatedAt:     time.Now().UTC(),
	}

	if err := review.Validate(); err != nil {
		return nil, err
	}

	return review, nil
}

// Validate checks if the Review has valid data.
func (r *Review) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.SessionID == uuid.Nil {
		return ErrReviewSessionEmpty
	}

	if r.FromProfileID == uuid.Nil {
		return ErrReviewFromEmpty
	}

	if r.ToProfileID == uuid.Nil {
		return ErrReviewToEmpty
	}

	if r.Content == "" {
		return ErrReviewContentEmpty
	}

	if r.Rating < MinRating || r.Rating > MaxRating {
		return ErrInvalidRating
	}

	return nil
}
