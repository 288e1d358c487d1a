package mocks

import (
	"context"

	"github.com/google/uuid"

	"github.com/mentorhub/mentorhub-api/internal/service/auth"
)

// MockJWTService implements auth.JWTService for testing.
type MockJWTService struct {
	GenerateTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	ValidateTokenFn func(ctx context.Context, tokenString string) (*auth.Claims, error)

	// Default responses when the corresponding Fn is nil.
	Token  string
	Claims *auth.Claims
	Err    error
}

var _ auth.JWTService = (*MockJWTService)(nil)

func (m *MockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	if m.GenerateTokenFn != nil {
		return m.GenerateTokenFn(ctx, userID)
	}
	if m.Err != nil {
		return "", m.Err
	}
	return m.Token, nil
}

func (m *MockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, tokenString)
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Claims, nil
}
