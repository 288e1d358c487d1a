package api

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// StatsReader is the slice of the aggregates service the profile handler
// needs.
type StatsReader interface {
	GetStats(ctx context.Context, profileID uuid.UUID) (domain.ProfileStats, error)
}

// ProfileHandler handles profile HTTP requests.
type ProfileHandler struct {
	statsReader StatsReader
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(statsReader StatsReader) *ProfileHandler {
	return &ProfileHandler{statsReader: statsReader}
}

// GetProfileStats handles GET /v1/profiles/{profileID}/stats. Stats are
// served from cache when available and fall back to the stored counters.
func (h *ProfileHandler) GetProfileStats(w http.ResponseWriter, r *http.Request) {
	profileID, ok := parseUUIDParam(w, r, "profileID")
	if !ok {
		return
	}

	stats, err := h.statsReader.GetStats(r.Context(), profileID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, stats, "")
}
