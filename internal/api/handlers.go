package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// handleServiceError maps a service error to its HTTP response and logs the
// underlying cause.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)
	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err, status), err)
}

// requireActingProfile resolves the authenticated user's profile. It writes
// the error response itself and returns false when the caller should stop.
func requireActingProfile(
	w http.ResponseWriter,
	r *http.Request,
	profiles store.ProfileStore,
) (*domain.Profile, bool) {
	userID, ok := r.Context().Value(shared.UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		shared.RespondWithError(w, r, http.StatusUnauthorized, "User ID not found or invalid")
		return nil, false
	}

	profile, err := profiles.GetByUserID(r.Context(), userID)
	if err != nil {
		if store.IsNotFoundError(err) {
			shared.RespondWithError(w, r, http.StatusForbidden, "No profile for authenticated user")
			return nil, false
		}
		handleServiceError(w, r, err)
		return nil, false
	}
	return profile, true
}

// parseUUIDParam extracts a UUID path parameter. It writes a 400 response
// and returns false when the parameter is malformed.
func parseUUIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// parsePagination reads page and limit query parameters, applying the
// defaults and the limit cap.
func parsePagination(r *http.Request) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && v > 0 {
		page = v
	}
	limit = defaultPageLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}
