package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/domain"
	"github.com/mentorhub/mentorhub-api/internal/mocks"
	"github.com/mentorhub/mentorhub-api/internal/service/review"
	"github.com/mentorhub/mentorhub-api/internal/store"
)

func reviewRouter(h *ReviewHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/v1/sessions/{sessionID}/reviews", h.SubmitReview)
	r.Get("/v1/reviews/{reviewID}", h.GetReview)
	r.Get("/v1/profiles/{profileID}/reviews", h.ListProfileReviews)
	return r
}

func TestSubmitReview(t *testing.T) {
	t.Parallel()

	userID := uuid.New()
	actingProfile := &domain.Profile{ID: uuid.New(), UserID: userID}
	sessionID := uuid.New()
	body := SubmitReviewRequest{Content: "Very helpful session.", Rating: 5}

	t.Run("creates review", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			SubmitFn: func(_ context.Context, sid, acting uuid.UUID, content string, rating int) (*domain.Review, error) {
				assert.Equal(t, sessionID, sid)
				assert.Equal(t, actingProfile.ID, acting)
				return &domain.Review{
					ID:            uuid.New(),
					SessionID:     sid,
					FromProfileID: acting,
					Content:       content,
					Rating:        rating,
				}, nil
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{Profile: actingProfile})

		req := authedRequest(t, http.MethodPost, "/v1/sessions/"+sessionID.String()+"/reviews", body, userID)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.True(t, env.Success)
	})

	t.Run("rejects out of range rating", func(t *testing.T) {
		t.Parallel()

		h := NewReviewHandler(&fakeReviewService{}, &mocks.MockProfileStore{Profile: actingProfile})

		req := authedRequest(t, http.MethodPost, "/v1/sessions/"+sessionID.String()+"/reviews",
			SubmitReviewRequest{Content: "ok", Rating: 6}, userID)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("maps duplicate review to 409", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			SubmitFn: func(_ context.Context, _, _ uuid.UUID, _ string, _ int) (*domain.Review, error) {
				return nil, store.ErrReviewExists
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{Profile: actingProfile})

		req := authedRequest(t, http.MethodPost, "/v1/sessions/"+sessionID.String()+"/reviews", body, userID)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("maps non reviewer to 403", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			SubmitFn: func(_ context.Context, _, _ uuid.UUID, _ string, _ int) (*domain.Review, error) {
				return nil, review.ErrNotReviewer
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{Profile: actingProfile})

		req := authedRequest(t, http.MethodPost, "/v1/sessions/"+sessionID.String()+"/reviews", body, userID)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("maps incomplete session to 409", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			SubmitFn: func(_ context.Context, _, _ uuid.UUID, _ string, _ int) (*domain.Review, error) {
				return nil, store.ErrInvalidTransition
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{Profile: actingProfile})

		req := authedRequest(t, http.MethodPost, "/v1/sessions/"+sessionID.String()+"/reviews", body, userID)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetReview(t *testing.T) {
	t.Parallel()

	t.Run("returns review", func(t *testing.T) {
		t.Parallel()

		reviewID := uuid.New()
		svc := &fakeReviewService{
			GetByIDFn: func(_ context.Context, id uuid.UUID) (*domain.Review, error) {
				return &domain.Review{ID: id, Rating: 4}, nil
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{})

		req := httptest.NewRequest(http.MethodGet, "/v1/reviews/"+reviewID.String(), nil)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps missing review to 404", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			GetByIDFn: func(_ context.Context, _ uuid.UUID) (*domain.Review, error) {
				return nil, store.ErrReviewNotFound
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{})

		req := httptest.NewRequest(http.MethodGet, "/v1/reviews/"+uuid.NewString(), nil)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestListProfileReviews(t *testing.T) {
	t.Parallel()

	profileID := uuid.New()

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			ListForProfileFn: func(_ context.Context, id uuid.UUID, page, limit int) ([]*domain.Review, int, error) {
				assert.Equal(t, profileID, id)
				assert.Equal(t, 3, page)
				assert.Equal(t, 5, limit)
				return []*domain.Review{{ID: uuid.New()}}, 11, nil
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{})

		req := httptest.NewRequest(http.MethodGet,
			"/v1/profiles/"+profileID.String()+"/reviews?page=3&limit=5", nil)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("maps unknown profile to 404", func(t *testing.T) {
		t.Parallel()

		svc := &fakeReviewService{
			ListForProfileFn: func(_ context.Context, _ uuid.UUID, _, _ int) ([]*domain.Review, int, error) {
				return nil, 0, store.ErrProfileNotFound
			},
		}
		h := NewReviewHandler(svc, &mocks.MockProfileStore{})

		req := httptest.NewRequest(http.MethodGet,
			"/v1/profiles/"+profileID.String()+"/reviews", nil)
		rec := httptest.NewRecorder()
		reviewRouter(h).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
