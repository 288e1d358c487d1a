package api

import (
	"net/http"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/service/session"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

// SessionHandler handles session lifecycle HTTP requests.
type SessionHandler struct {
	sessionService session.Service
	profileStore   store.ProfileStore
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService session.Service, profileStore store.ProfileStore) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		profileStore:   profileStore,
	}
}

// RequestSession handles POST /v1/sessions/requests/{profileID}. The path
// parameter names the mentor being asked; the requester comes from the token.
func (h *SessionHandler) RequestSession(w http.ResponseWriter, r *http.Request) {
	acting, ok := requireActingProfile(w, r, h.profileStore)
	if !ok {
		return
	}

	toProfileID, ok := parseUUIDParam(w, r, "profileID")
	if !ok {
		return
	}

	var req CreateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	created, err := h.sessionService.Request(
		r.Context(), acting.ID, toProfileID, req.Topic, req.Problem, req.StartAt, req.EndAt)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusCreated, created, "Session requested")
}

// UpdateSession handles PUT /v1/sessions/{sessionID}. The mentor accepts or
// declines a pending request; either participant cancels.
func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	acting, ok := requireActingProfile(w, r, h.profileStore)
	if !ok {
		return
	}

	sessionID, ok := parseUUIDParam(w, r, "sessionID")
	if !ok {
		return
	}

	var req UpdateSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusUnprocessableEntity, "Validation error: "+err.Error())
		return
	}

	var updated *domain.Session
	var err error
	if req.Action == string(domain.SessionStatusCancelled) {
		updated, err = h.sessionService.Cancel(r.Context(), sessionID, acting.ID)
	} else {
		updated, err = h.sessionService.Respond(r.Context(), sessionID, acting.ID, req.Action)
	}
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, updated, "Session updated")
}

// ListSessions handles GET /v1/sessions. It returns the sessions the
// authenticated profile participates in on either side.
func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	acting, ok := requireActingProfile(w, r, h.profileStore)
	if !ok {
		return
	}

	page, limit := parsePagination(r)
	status := domain.SessionStatus(r.URL.Query().Get("status"))

	sessions, total, err := h.sessionService.List(r.Context(), acting.ID, status, page, limit)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, ListResponse{
		Items:      sessions,
		Pagination: shared.NewPagination(page, limit, total),
	}, "")
}
