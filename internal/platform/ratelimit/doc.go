// Package ratelimit throttles API clients by key.
//
// Two Limiter implementations are provided: MemoryLimiter keeps one
// token-bucket (golang.org/x/time/rate) per key in process, and
// RedisLimiter counts requests in fixed one-second windows in Redis so the
// limit holds across replicas.
package ratelimit
