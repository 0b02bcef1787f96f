package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/phrazzld/bookstore-api/internal/config"
	"github.com/redis/go-redis/v9"
)

// Decision is the outcome of a single Allow call.
type Decision struct {
	Allowed    bool
	RetryAfter time.Duration
}

// Limiter decides whether the request identified by key may proceed.
type Limiter interface {
	Allow(ctx context.Context, key string) (Decision, error)
}

// New builds the limiter selected by cfg.Backend. The returned close
// function releases backend resources and is never nil.
func New(ctx context.Context, cfg config.RateLimitConfig) (Limiter, func() error, error) {
	switch cfg.Backend {
	case "", "memory":
		l := NewMemoryLimiter(cfg.RPS, cfg.Burst)
		l.StartJanitor(ctx)
		return l, func() error { return nil }, nil
	case "redis":
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return NewRedisLimiter(rdb, cfg.RPS, cfg.Burst), rdb.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown rate limit backend %q", cfg.Backend)
	}
}
