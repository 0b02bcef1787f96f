package auth

import (
	"context"
	"time"
)

// TokenValidator checks bearer tokens presented to the API.
type TokenValidator interface {
	// ValidateToken verifies the token signature and time claims and returns
	// its claims. It returns ErrExpiredToken, ErrTokenNotYetValid or
	// ErrInvalidToken when the token is not acceptable.
	ValidateToken(ctx context.Context, tokenString string) (*Claims, error)
}

// TokenIssuer mints tokens. Only the HMAC service implements it; it is used
// for local development and tests, since production tokens come from the
// authorization server.
type TokenIssuer interface {
	GenerateToken(ctx context.Context, subject string, scopes []string) (string, error)
}

// Claims are the validated claims of a bearer token.
type Claims struct {
	Subject   string    `json:"sub"`
	Issuer    string    `json:"iss,omitempty"`
	Audience  []string  `json:"aud,omitempty"`
	Scopes    []string  `json:"scopes,omitempty"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
	ID        string    `json:"jti,omitempty"`
}
