package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/redact"
	"github.com/phrazzld/bookstore-api/internal/service/auth"
)

// claimsKey is the context key for validated token claims.
const claimsKey shared.ContextKey = "claims"

// AuthMiddleware authenticates API requests with bearer tokens.
type AuthMiddleware struct {
	validator auth.TokenValidator
}

// NewAuthMiddleware creates a new AuthMiddleware with the given validator.
func NewAuthMiddleware(validator auth.TokenValidator) *AuthMiddleware {
	if validator == nil {
		// ALLOW-PANIC: constructor misuse is a programming error
		panic("token validator cannot be nil")
	}
	return &AuthMiddleware{validator: validator}
}

// Authenticate validates the bearer token in the Authorization header and
// stores its claims in the request context. Requests without a valid token
// are rejected with an Unauthenticated fault.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, err := bearerToken(r.Header.Get("Authorization"))
		if err != nil {
			shared.RespondWithError(w, r, &shared.UnauthenticatedError{Err: err})
			return
		}

		claims, err := m.validator.ValidateToken(r.Context(), token)
		if err != nil {
			log := logger.FromContextOrDefault(r.Context(), slog.Default())
			if errors.Is(err, auth.ErrExpiredToken) {
				log.Debug("expired token presented")
			} else {
				log.Debug("token validation failed", slog.String("error", redact.Error(err)))
			}
			shared.RespondWithError(w, r, &shared.UnauthenticatedError{Err: err})
			return
		}

		ctx := WithClaims(r.Context(), claims)
		ctx = logger.WithLogger(ctx, logger.FromContextOrDefault(ctx, slog.Default()).
			With(slog.String("subject", claims.Subject)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", auth.ErrInvalidToken
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", auth.ErrMissingToken
	}
	return token, nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims stored by Authenticate.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims != nil
}
