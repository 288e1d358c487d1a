package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mentorhub/mentorhub-api/internal/config"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:            "0123456789abcdef0123456789abcdef",
		TokenLifetimeMinutes: 60,
	}
}

func TestNewJWTService(t *testing.T) {
	t.Parallel()

	t.Run("rejects short secrets", func(t *testing.T) {
		t.Parallel()

		_, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "too-short",
			TokenLifetimeMinutes: 60,
		})
		assert.Error(t, err)
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round trip preserves the user ID", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		userID := uuid.New()
		token, err := svc.GenerateToken(ctx, userID)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := svc.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, userID.String(), claims.Subject)
		assert.NotEmpty(t, claims.ID)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		impl := svc.(*hmacJWTService)
		issueTime := time.Now().Add(-24 * time.Hour)
		impl.timeFunc = func() time.Time { return issueTime }

		token, err := svc.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		impl.timeFunc = time.Now
		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("rejects a token signed with a different secret", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		other, err := NewJWTService(config.AuthConfig{
			JWTSecret:            "ffffffffffffffffffffffffffffffff",
			TokenLifetimeMinutes: 60,
		})
		require.NoError(t, err)

		token, err := other.GenerateToken(ctx, uuid.New())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects an empty token", func(t *testing.T) {
		t.Parallel()

		svc, err := NewJWTService(testAuthConfig())
		require.NoError(t, err)

		_, err = svc.ValidateToken(ctx, "")
		assert.ErrorIs(t, err, ErrMissingToken)
	})
}
