package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/service/auth"
	"github.com/mentorhub/mentorhub-api/internal/service/review"
	"github.com/mentorhub/mentorhub-api/internal/service/session"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// MapErrorToStatusCode translates service and store errors into HTTP status
// codes. Unknown errors map to 500 so internals never leak by default.
func MapErrorToStatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK

	// Authentication failures.
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrExpiredToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return http.StatusUnauthorized

	// Authorization failures: the caller exists but is not the right party.
	case errors.Is(err, session.ErrNotRecipient),
		errors.Is(err, session.ErrNotParticipant),
		errors.Is(err, review.ErrNotReviewer):
		return http.StatusForbidden

	// Missing entities.
	case store.IsNotFoundError(err):
		return http.StatusNotFound

	// State conflicts: the request was well formed but the entity has moved on.
	case errors.Is(err, store.ErrInvalidTransition),
		store.IsDuplicateError(err):
		return http.StatusConflict

	// Domain validation and malformed input.
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, session.ErrSelfSession),
		errors.Is(err, session.ErrInvalidDecision),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err. Every error
// kind maps to a fixed message so store and driver error text never reaches
// a client; handlers log the real error server side. Domain validation
// errors are the one exception: their text is composed entirely in this
// codebase and tells the caller what to fix.
func GetSafeErrorMessage(err error, statusCode int) string {
	if statusCode >= http.StatusInternalServerError {
		return "An internal error occurred"
	}

	switch {
	case err == nil:
		return ""

	case errors.Is(err, auth.ErrExpiredToken):
		return "Token expired"
	case errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrTokenNotYetValid),
		errors.Is(err, auth.ErrMissingToken):
		return "Invalid token"

	case errors.Is(err, session.ErrNotRecipient):
		return "Only the requested mentor may respond to this session"
	case errors.Is(err, session.ErrNotParticipant):
		return "Only a session participant may perform this action"
	case errors.Is(err, review.ErrNotReviewer):
		return "Only the session requester may review it"

	case errors.Is(err, store.ErrProfileNotFound):
		return "Profile not found"
	case errors.Is(err, store.ErrSessionNotFound):
		return "Session not found"
	case errors.Is(err, store.ErrReviewNotFound):
		return "Review not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrInvalidTransition):
		return "The session's current state does not allow this action"
	case errors.Is(err, store.ErrReviewExists):
		return "This session already has a review"

	case errors.Is(err, session.ErrSelfSession):
		return "Cannot request a session with your own profile"
	case errors.Is(err, session.ErrInvalidDecision):
		return "Decision must be accepted or declined"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Request references a missing or invalid resource"

	case errors.Is(err, domain.ErrValidation):
		return capitalize(err.Error())

	default:
		return "The request could not be processed"
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
