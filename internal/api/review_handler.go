package api

import (
	"net/http"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
	"github.com/mentorhub/mentorhub-api/internal/service/review"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// ReviewHandler handles review HTTP requests.
type ReviewHandler struct {
	reviewService review.Service
	profileStore  store.ProfileStore
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, profileStore store.ProfileStore) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		profileStore:  profileStore,
	}
}

// SubmitReview handles POST /v1/sessions/{sessionID}/reviews. Only the
// requester of a completed session may review it.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	acting, ok := requireActingProfile(w, r, h.profileStore)
	if !ok {
		return
	}

	sessionID, ok := parseUUIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	var req SubmitReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	created, err := h.reviewService.Submit(r.Context(), sessionID, acting.ID, req.Content, req.Rating)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, created, "Review submitted")
}

// GetReview handles GET /v1/reviews/{reviewID}.
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	reviewID, ok := parseUUIDParam(w, r, "reviewID")
	if !ok {
		return
	}

	found, err := h.reviewService.GetByID(r.Context(), reviewID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, found, "")
}

// ListProfileReviews handles GET /v1/profiles/{profileID}/reviews.
func (h *ReviewHandler) ListProfileReviews(w http.ResponseWriter, r *http.Request) {
	profileID, ok := parseUUIDParam(w, r, "profileID")
	if !ok {
		return
	}

	page, limit := parsePagination(r)

	reviews, total, err := h.reviewService.ListForProfile(r.Context(), profileID, page, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, ListResponse{
		Items:      reviews,
		Pagination: shared.NewPagination(page, limit, total),
	}, "")
}
