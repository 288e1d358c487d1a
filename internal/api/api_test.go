package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/api/shared"
	"github.com/mentorhub/mentorhub-api/internal/domain"
)

// fakeSessionService implements session.Service with settable functions.
type fakeSessionService struct {
	RequestFn     func(ctx context.Context, fromProfileID, toProfileID uuid.UUID, topic, problem string, startAt, endAt time.Time) (*domain.Session, error)
	RespondFn     func(ctx context.Context, sessionID, actingProfileID uuid.UUID, decision string) (*domain.Session, error)
	CancelFn      func(ctx context.Context, sessionID, actingProfileID uuid.UUID) (*domain.Session, error)
	CompleteFn    func(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error)
	ListFn        func(ctx context.Context, profileID uuid.UUID, status domain.SessionStatus, page, limit int) ([]*domain.Session, int, error)
	CompleteDueFn func(ctx context.Context, before time.Time, limit int) (int, error)
}

func (f *fakeSessionService) Request(
	ctx context.Context,
	fromProfileID, toProfileID uuid.UUID,
	topic, problem string,
	startAt, endAt time.Time,
) (*domain.Session, error) {
	return f.RequestFn(ctx, fromProfileID, toProfileID, topic, problem, startAt, endAt)
}

func (f *fakeSessionService) Respond(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
	decision string,
) (*domain.Session, error) {
	return f.RespondFn(ctx, sessionID, actingProfileID, decision)
}

func (f *fakeSessionService) Cancel(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
) (*domain.Session, error) {
	return f.CancelFn(ctx, sessionID, actingProfileID)
}

func (f *fakeSessionService) Complete(ctx context.Context, sessionID uuid.UUID) (*domain.Session, error) {
	return f.CompleteFn(ctx, sessionID)
}

func (f *fakeSessionService) List(
	ctx context.Context,
	profileID uuid.UUID,
	status domain.SessionStatus,
	page, limit int,
) ([]*domain.Session, int, error) {
	return f.ListFn(ctx, profileID, status, page, limit)
}

func (f *fakeSessionService) CompleteDue(ctx context.Context, before time.Time, limit int) (int, error) {
	return f.CompleteDueFn(ctx, before, limit)
}

// fakeReviewService implements review.Service with settable functions.
type fakeReviewService struct {
	SubmitFn         func(ctx context.Context, sessionID, actingProfileID uuid.UUID, content string, rating int) (*domain.Review, error)
	GetByIDFn        func(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error)
	ListForProfileFn func(ctx context.Context, profileID uuid.UUID, page, limit int) ([]*domain.Review, int, error)
}

func (f *fakeReviewService) Submit(
	ctx context.Context,
	sessionID, actingProfileID uuid.UUID,
	content string,
	rating int,
) (*domain.Review, error) {
	return f.SubmitFn(ctx, sessionID, actingProfileID, content, rating)
}

func (f *fakeReviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*domain.Review, error) {
	return f.GetByIDFn(ctx, reviewID)
}

func (f *fakeReviewService) ListForProfile(
	ctx context.Context,
	profileID uuid.UUID,
	page, limit int,
) ([]*domain.Review, int, error) {
	return f.ListForProfileFn(ctx, profileID, page, limit)
}

// fakeStatsReader implements StatsReader.
type fakeStatsReader struct {
	GetStatsFn func(ctx context.Context, profileID uuid.UUID) (domain.ProfileStats, error)
}

func (f *fakeStatsReader) GetStats(ctx context.Context, profileID uuid.UUID) (domain.ProfileStats, error) {
	return f.GetStatsFn(ctx, profileID)
}

// authedRequest builds a request carrying the given user ID, mirroring what
// the auth middleware does in production.
func authedRequest(t *testing.T, method, target string, body interface{}, userID uuid.UUID) *http.Request {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	}
	return req
}

// decodeEnvelope parses a recorded response body.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) shared.Envelope {
	t.Helper()

	var env shared.Envelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&env))
	return env
}
