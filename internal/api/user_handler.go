package api

import (
	"net/http"
	"time"

	"github.com/phrazzld/bookstore-api/internal/api/middleware"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
)

// UserResponse describes the authenticated caller.
type UserResponse struct {
	ID        string    `json:"id"`
	Scopes    []string  `json:"scopes"`
	ExpiresAt time.Time `json:"expires_at"`
}

// GetUser handles GET /user. It reports the subject of the bearer token.
func GetUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		shared.RespondWithError(w, r, &shared.UnauthenticatedError{})
		return
	}

	scopes := claims.Scopes
	if scopes == nil {
		scopes = []string{}
	}
	shared.RespondWithJSON(w, r, http.StatusOK, shared.Document{
		Data: UserResponse{ID: claims.Subject, Scopes: scopes, ExpiresAt: claims.ExpiresAt.UTC()},
	})
}
