package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/mocks"
	"github.com/mentorhub/mentorhub-api/internal/service/auth"
)

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	tests := []struct {
		name       string
		header     string
		jwtService *mocks.MockJWTService
		wantStatus int
		wantUserID bool
	}{
		{
			name:       "valid token",
			header:     "Bearer good-token",
			jwtService: &mocks.MockJWTService{Claims: &auth.Claims{UserID: userID}},
			wantStatus: http.StatusOK,
			wantUserID: true,
		},
		{
			name:       "missing header",
			header:     "",
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "malformed header",
			header:     "Token abc",
			jwtService: &mocks.MockJWTService{},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired token",
			header:     "Bearer stale",
			jwtService: &mocks.MockJWTService{Err: auth.ErrExpiredToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "invalid token",
			header:     "Bearer junk",
			jwtService: &mocks.MockJWTService{Err: auth.ErrInvalidToken},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "validation failure",
			header:     "Bearer broken",
			jwtService: &mocks.MockJWTService{Err: assert.AnError},
			wantStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var gotUserID uuid.UUID
			var called bool
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				gotUserID, _ = GetUserID(r)
				w.WriteHeader(http.StatusOK)
			})

			mw := NewAuthMiddleware(tc.jwtService)
			req := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			mw.Authenticate(next).ServeHTTP(rec, req)

			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantUserID {
				require.True(t, called)
				assert.Equal(t, userID, gotUserID)
			} else {
				assert.False(t, called)
			}
		})
	}
}
