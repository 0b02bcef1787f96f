package auth

import (
	"context"
	"crypto/rsa"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/config"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
)

const (
	defaultClockSkew     = 2 * time.Minute
	defaultTokenLifetime = time.Hour
	minSecretLength      = 32
)

// tokenClaims is the JWT payload. The authorization server puts the
// granted scopes in a "scopes" array.
type tokenClaims struct {
	Scopes []string `json:"scopes,omitempty"`
	jwt.RegisteredClaims
}

// JWTService validates tokens signed with either a shared HMAC secret
// (HS256) or an RSA key pair (RS256).
type JWTService struct {
	method        jwt.SigningMethod
	verifyKey     any
	signKey       any
	issuer        string
	audience      string
	tokenLifetime time.Duration
	clockSkew     time.Duration
	timeFunc      func() time.Time
}

var _ TokenValidator = (*JWTService)(nil)
var _ TokenIssuer = (*JWTService)(nil)

// Option customizes a JWTService.
type Option func(*JWTService)

// WithTimeFunc replaces the clock used to validate time claims.
func WithTimeFunc(fn func() time.Time) Option {
	return func(s *JWTService) { s.timeFunc = fn }
}

// WithTokenLifetime sets the lifetime of tokens minted by GenerateToken.
func WithTokenLifetime(d time.Duration) Option {
	return func(s *JWTService) { s.tokenLifetime = d }
}

// WithRSASigningKey enables GenerateToken for RS256 services.
func WithRSASigningKey(key *rsa.PrivateKey) Option {
	return func(s *JWTService) { s.signKey = key }
}

// NewJWTService creates a JWTService from configuration. A PEM public key
// selects RS256; otherwise the token secret selects HS256.
func NewJWTService(cfg config.AuthConfig, opts ...Option) (*JWTService, error) {
	s := &JWTService{
		issuer:        cfg.Issuer,
		audience:      cfg.Audience,
		tokenLifetime: defaultTokenLifetime,
		clockSkew:     defaultClockSkew,
		timeFunc:      time.Now,
	}

	switch {
	case cfg.PublicKey != "":
		key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(cfg.PublicKey))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		s.method = jwt.SigningMethodRS256
		s.verifyKey = key
	case len(cfg.TokenSecret) >= minSecretLength:
		s.method = jwt.SigningMethodHS256
		s.verifyKey = []byte(cfg.TokenSecret)
		s.signKey = []byte(cfg.TokenSecret)
	default:
		return nil, fmt.Errorf("%w: token secret must be at least %d characters", ErrInvalidKey, minSecretLength)
	}

	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Method returns the signing algorithm the service accepts.
func (s *JWTService) Method() string {
	return s.method.Alg()
}

// ValidateToken implements TokenValidator.
func (s *JWTService) ValidateToken(ctx context.Context, tokenString string) (*Claims, error) {
	log := logger.FromContext(ctx)

	if tokenString == "" {
		return nil, ErrMissingToken
	}

	now := s.timeFunc()
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithLeeway(s.clockSkew),
		jwt.WithTimeFunc(func() time.Time { return now }),
		jwt.WithExpirationRequired(),
	}
	if s.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(s.issuer))
	}
	if s.audience != "" {
		parserOpts = append(parserOpts, jwt.WithAudience(s.audience))
	}

	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{},
		func(token *jwt.Token) (any, error) {
			return s.verifyKey, nil
		},
		parserOpts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			log.Debug("token validation failed: token expired", slog.String("error", err.Error()))
			return nil, ErrExpiredToken
		case errors.Is(err, jwt.ErrTokenNotValidYet):
			log.Debug("token validation failed: token not yet valid", slog.String("error", err.Error()))
			return nil, ErrTokenNotYetValid
		default:
			log.Debug("token validation failed",
				slog.String("error", err.Error()),
				slog.String("error_type", fmt.Sprintf("%T", err)))
			return nil, ErrInvalidToken
		}
	}

	tc, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid || tc.Subject == "" {
		log.Debug("token validation failed: invalid claims")
		return nil, ErrInvalidToken
	}

	claims := &Claims{
		Subject:  tc.Subject,
		Issuer:   tc.Issuer,
		Audience: tc.Audience,
		Scopes:   tc.Scopes,
		ID:       tc.ID,
	}
	if tc.IssuedAt != nil {
		claims.IssuedAt = tc.IssuedAt.Time
	}
	if tc.ExpiresAt != nil {
		claims.ExpiresAt = tc.ExpiresAt.Time
	}

	log.Debug("token validated", slog.String("subject", claims.Subject), slog.String("token_id", claims.ID))
	return claims, nil
}

// GenerateToken implements TokenIssuer. RS256 services need
// WithRSASigningKey.
func (s *JWTService) GenerateToken(ctx context.Context, subject string, scopes []string) (string, error) {
	if s.signKey == nil {
		return "", fmt.Errorf("%w: no signing key configured for %s", ErrInvalidKey, s.method.Alg())
	}

	now := s.timeFunc()
	claims := tokenClaims{
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenLifetime)),
			ID:        uuid.NewString(),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.signKey)
	if err != nil {
		logger.FromContext(ctx).Error("failed to sign token",
			slog.String("error", err.Error()),
			slog.String("signing_method", s.method.Alg()))
		return "", fmt.Errorf("failed to sign token with %s: %w", s.method.Alg(), err)
	}
	return signed, nil
}
