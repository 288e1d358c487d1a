package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Profile-specific validation errors. All wrap ErrValidation so callers can
// classify them with a single errors.Is check.
var (
	// ErrProfileIDEmpty is returned when a profile ID is empty or nil.
	ErrProfileIDEmpty = fmt.Errorf("%w: profile ID cannot be empty", ErrValidation)

	// ErrProfileUserIDEmpty is returned when a profile's owning user ID is empty or nil.
	ErrProfileUserIDEmpty = fmt.Errorf("%w: profile user ID cannot be empty", ErrValidation)
)

// Profile is a mentor/mentee's public-facing record, distinct from the login
// credential it belongs to. The core does not own profile field validation;
// it consumes the directory for identity resolution and writes the derived
// aggregate counters back to it.
//
// SessionCount, ReviewCount and ReviewAverageRating are a cache over the
// session/review stores, never written directly by clients.
type Profile struct {
	ID                    uuid.UUID  `json:"id"`
	UserID                uuid.UUID  `json:"user_id"`
	DisplayName           string     `json:"display_name"`
	ContactEmail          string     `json:"contact_email,omitempty"`
	SessionCount          int        `json:"session_count"`
	ReviewCount           int        `json:"review_count"`
	ReviewAverageRating   float64    `json:"review_average_rating"`
	AggregatesRefreshedAt *time.Time `json:"aggregates_refreshed_at,omitempty"`
	CreatedAt             time.Time  `json:"created_at"`
	UpdatedAt             time.Time  `json:"updated_at"`
}

// NewProfile creates a new Profile owned by the given user with zeroed
// aggregates. It generates a new UUID for the profile ID and sets the
// creation/update timestamps. Returns an error if validation fails.
func NewProfile(userID uuid.UUID, displayName, contactEmail string) (*Profile, error) {
	profile := &Profile{
		ID:           uuid.New(),
		UserID:       userID,
		DisplayName:  displayName,
		ContactEmail: contactEmail,
		CreatedAt:    time.Now().UTC(),
		UpdatedAt:    time.Now().UTC(),
	}

	if err := profile.Validate(); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate checks if the Profile has valid data.
func (p *Profile) Validate() error {
	if p.ID == uuid.Nil {
		return ErrProfileIDEmpty
	}

	if p.UserID == uuid.Nil {
		return ErrProfileUserIDEmpty
	}

	return nil
}

// ProfileStats holds the derived aggregate counters for a profile. It is the
// value the recalculation engine computes from the session/review stores and
// the shape served from the stats cache.
type ProfileStats struct {
	ProfileID           uuid.UUID  `json:"profile_id"`
	SessionCount        int        `json:"session_count"`
	ReviewCount         int        `json:"review_count"`
	ReviewAverageRating float64    `json:"review_average_rating"`
	RefreshedAt         *time.Time `json:"refreshed_at,omitempty"`
}
