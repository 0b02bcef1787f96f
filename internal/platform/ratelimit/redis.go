package ratelimit

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisLimiter counts requests per key in fixed one-second windows. Each
// window admits rps+burst requests, rounded down, and at least one.
type RedisLimiter struct {
	rdb    redis.Cmdable
	prefix string
	limit  int64
	now    func() time.Time
}

// RedisOption customizes a RedisLimiter.
type RedisOption func(*RedisLimiter)

// WithPrefix sets the key prefix used in Redis.
func WithPrefix(prefix string) RedisOption {
	return func(l *RedisLimiter) { l.prefix = strings.Trim(prefix, ":") }
}

// WithRedisClock replaces time.Now.
func WithRedisClock(now func() time.Time) RedisOption {
	return func(l *RedisLimiter) { l.now = now }
}

// NewRedisLimiter creates a limiter backed by rdb.
func NewRedisLimiter(rdb redis.Cmdable, rps float64, burst int, opts ...RedisOption) *RedisLimiter {
	limit := int64(math.Floor(rps)) + int64(burst)
	if limit < 1 {
		limit = 1
	}
	l := &RedisLimiter{
		rdb:    rdb,
		prefix: "bookstore:ratelimit",
		limit:  limit,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ Limiter = (*RedisLimiter)(nil)

// Limit returns the number of requests admitted per window.
func (l *RedisLimiter) Limit() int64 {
	return l.limit
}

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	now := l.now()
	window := now.Unix()
	redisKey := fmt.Sprintf("%s:%s:%d", l.prefix, key, window)

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, 2*time.Second)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, fmt.Errorf("rate limit counter: %w", err)
	}

	if incr.Val() > l.limit {
		next := time.Unix(window+1, 0)
		return Decision{Allowed: false, RetryAfter: next.Sub(now)}, nil
	}
	return Decision{Allowed: true}, nil
}
