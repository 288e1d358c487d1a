package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrValidation is returned when a domain entity fails validation.
	// This is often wrapped with a more specific error message.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidSessionStatus is returned when a session status is not one of
	// the defined lifecycle states.
	ErrInvalidSessionStatus = fmt.Errorf("%w: invalid session status", ErrValidation)

	// ErrInvalidRating is returned when a review rating is out of bounds.
	ErrInvalidRating = fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
)
