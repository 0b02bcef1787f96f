package mocks

import (
	"context"

	"golang.org/x/oauth2"
)

// MockOAuthClient is a function-field mock of the authorization server
// client.
type MockOAuthClient struct {
	AuthCodeURLFn func(state string) string
	ExchangeFn    func(ctx context.Context, code string) (*oauth2.Token, error)
	FetchUserFn   func(ctx context.Context, tok *oauth2.Token) (map[string]any, error)

	Token       *oauth2.Token
	User        map[string]any
	ExchangeErr error
	FetchErr    error

	// LastCode records the code passed to Exchange.
	LastCode string
}

func (m *MockOAuthClient) AuthCodeURL(state string) string {
	if m.AuthCodeURLFn != nil {
		return m.AuthCodeURLFn(state)
	}
	return "https://auth.example.test/oauth/authorize?state=" + state
}

func (m *MockOAuthClient) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	m.LastCode = code
	if m.ExchangeFn != nil {
		return m.ExchangeFn(ctx, code)
	}
	if m.ExchangeErr != nil {
		return nil, m.ExchangeErr
	}
	return m.Token, nil
}

func (m *MockOAuthClient) FetchUser(ctx context.Context, tok *oauth2.Token) (map[string]any, error) {
	if m.FetchUserFn != nil {
		return m.FetchUserFn(ctx, tok)
	}
	if m.FetchErr != nil {
		return nil, m.FetchErr
	}
	return m.User, nil
}
