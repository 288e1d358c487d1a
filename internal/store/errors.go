package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (e.g., ErrProfileNotFound, ErrSessionNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a second review for the same session).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrInvalidTransition is returned when a conditional status update finds
	// the session in a state the transition is not permitted from. This covers
	// both a straight disallowed transition and a lost race against a
	// concurrent transition.
	ErrInvalidTransition = errors.New("status transition not permitted")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrProfileNotFound indicates that the requested profile does not exist in the store.
	ErrProfileNotFound = fmt.Errorf("%w: profile", ErrNotFound)

	// ErrSessionNotFound indicates that the requested session does not exist in the store.
	ErrSessionNotFound = fmt.Errorf("%w: session", ErrNotFound)

	// ErrReviewNotFound indicates that the requested review does not exist in the store.
	ErrReviewNotFound = fmt.Errorf("%w: review", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrReviewExists indicates that the session already has a review.
	// Reviews are one-to-one with sessions; a second submission is a conflict.
	ErrReviewExists = fmt.Errorf("%w: review", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
// This includes the generic ErrNotFound and all entity-specific not found errors.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
