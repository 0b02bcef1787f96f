package mocks

import (
	"context"

	"github.com/phrazzld/bookstore-api/internal/service/auth"
)

// MockTokenValidator implements auth.TokenValidator.
type MockTokenValidator struct {
	ValidateTokenFn func(ctx context.Context, token string) (*auth.Claims, error)

	// Claims and ValidateErr are returned when ValidateTokenFn is nil.
	Claims      *auth.Claims
	ValidateErr error

	// LastToken records the most recent token passed to ValidateToken.
	LastToken string
}

var _ auth.TokenValidator = (*MockTokenValidator)(nil)

func (m *MockTokenValidator) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	m.LastToken = token
	if m.ValidateTokenFn != nil {
		return m.ValidateTokenFn(ctx, token)
	}
	if m.ValidateErr != nil {
		return nil, m.ValidateErr
	}
	return m.Claims, nil
}
