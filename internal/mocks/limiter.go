package mocks

import (
	"context"
	"sync"

	"github.com/phrazzld/bookstore-api/internal/platform/ratelimit"
)

// MockLimiter implements ratelimit.Limiter.
type MockLimiter struct {
	AllowFn func(ctx context.Context, key string) (ratelimit.Decision, error)

	// Decision and Err are returned when AllowFn is nil.
	Decision ratelimit.Decision
	Err      error

	mu   sync.Mutex
	keys []string
}

var _ ratelimit.Limiter = (*MockLimiter)(nil)

func (m *MockLimiter) Allow(ctx context.Context, key string) (ratelimit.Decision, error) {
	m.mu.Lock()
	m.keys = append(m.keys, key)
	m.mu.Unlock()

	if m.AllowFn != nil {
		return m.AllowFn(ctx, key)
	}
	return m.Decision, m.Err
}

// Keys returns the keys passed to Allow, in call order.
func (m *MockLimiter) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.keys...)
}
