package api

import (
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
)

const (
	stateCookieName = "oauth_state"
	stateCookieTTL  = 10 * time.Minute
)

// TokenResponse is returned by the callback route once the authorization
// code has been exchanged.
type TokenResponse struct {
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
	TokenType    string         `json:"token_type"`
	ExpiresAt    *time.Time     `json:"expires_at,omitempty"`
	User         map[string]any `json:"user"`
}

// OAuthHandler drives the authorization code flow against the
// authorization server.
type OAuthHandler struct {
	client       OAuthClient
	secureCookie bool
	logger       *slog.Logger
}

// NewOAuthHandler creates a new OAuthHandler. The state cookie is marked
// Secure when appURL is served over https.
func NewOAuthHandler(client OAuthClient, appURL string, logger *slog.Logger) *OAuthHandler {
	if client == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("oauth client cannot be nil for OAuthHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for OAuthHandler")
	}
	return &OAuthHandler{
		client:       client,
		secureCookie: strings.HasPrefix(appURL, "https://"),
		logger:       logger.With(slog.String("component", "oauth_handler")),
	}
}

// Redirect handles GET /redirect by sending the browser to the
// authorization endpoint with a fresh state value.
func (h *OAuthHandler) Redirect(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    state,
		Path:     "/callback",
		MaxAge:   int(stateCookieTTL.Seconds()),
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, h.client.AuthCodeURL(state), http.StatusFound)
}

// Callback handles GET /callback. It checks the state, exchanges the code
// for tokens and fetches the user the tokens belong to.
func (h *OAuthHandler) Callback(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	q := r.URL.Query()

	if e := q.Get("error"); e != "" {
		log.Debug("authorization denied", slog.String("error", e))
		shared.RespondWithError(w, r, &shared.UnauthenticatedError{})
		return
	}

	cookie, err := r.Cookie(stateCookieName)
	if err != nil || q.Get("state") == "" ||
		subtle.ConstantTimeCompare([]byte(cookie.Value), []byte(q.Get("state"))) != 1 {
		shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusBadRequest, "Invalid OAuth state"))
		return
	}
	h.clearStateCookie(w)

	code := q.Get("code")
	if code == "" {
		shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusBadRequest, "Missing authorization code"))
		return
	}

	tok, err := h.client.Exchange(r.Context(), code)
	if err != nil {
		shared.RespondWithError(w, r,
			shared.WrapHTTPError(http.StatusBadGateway, "Failed to exchange authorization code", err))
		return
	}

	user, err := h.client.FetchUser(r.Context(), tok)
	if err != nil {
		shared.RespondWithError(w, r,
			shared.WrapHTTPError(http.StatusBadGateway, "Failed to fetch authenticated user", err))
		return
	}

	resp := TokenResponse{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		TokenType:    tok.Type(),
		User:         user,
	}
	if !tok.Expiry.IsZero() {
		exp := tok.Expiry.UTC()
		resp.ExpiresAt = &exp
	}

	log.Info("authorization code exchanged", slog.String("token_type", resp.TokenType))
	shared.RespondWithJSON(w, r, http.StatusOK, resp)
}

func (h *OAuthHandler) clearStateCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookieName,
		Value:    "",
		Path:     "/callback",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
