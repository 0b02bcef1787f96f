package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/phrazzld/bookstore-api/internal/config"
	"golang.org/x/oauth2"
)

// DefaultHTTPTimeout is the default timeout for calls to the authorization server.
const DefaultHTTPTimeout = 30 * time.Second

// maxUserResponseBytes caps the /api/user response body.
const maxUserResponseBytes = 1 << 20

var (
	// ErrExchangeFailed is returned when the authorization server rejects a code.
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// ErrUserFetchFailed is returned when the user endpoint cannot be read.
	ErrUserFetchFailed = errors.New("failed to fetch authenticated user")
)

// Client talks to the authorization server on behalf of this application.
type Client struct {
	cfg        *oauth2.Config
	userURL    string
	httpClient *http.Client
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the HTTP client used for token exchange and the
// user request.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// NewClient creates a Client. redirectURL is the absolute URL of this
// application's callback route.
func NewClient(cfg config.OAuthConfig, redirectURL string, opts ...ClientOption) *Client {
	server := strings.TrimRight(cfg.ServerURL, "/")
	c := &Client{
		cfg: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  redirectURL,
			Scopes:       cfg.Scopes,
			Endpoint: oauth2.Endpoint{
				AuthURL:   server + "/oauth/authorize",
				TokenURL:  server + "/oauth/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		userURL:    server + "/api/user",
		httpClient: &http.Client{Timeout: DefaultHTTPTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthCodeURL returns the authorize URL the browser is redirected to.
func (c *Client) AuthCodeURL(state string) string {
	return c.cfg.AuthCodeURL(state)
}

// Exchange trades an authorization code for a token.
func (c *Client) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExchangeFailed, err)
	}
	return tok, nil
}

// FetchUser returns the JSON object served at /api/user for the token's owner.
func (c *Client) FetchUser(ctx context.Context, tok *oauth2.Token) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.userURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	tok.SetAuthHeader(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUserFetchFailed, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxUserResponseBytes))
		return nil, fmt.Errorf("%w: unexpected status %d", ErrUserFetchFailed, resp.StatusCode)
	}

	var user map[string]any
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxUserResponseBytes)).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrUserFetchFailed, err)
	}
	return user, nil
}
