package middleware

import (
	"log/slog"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/phrazzld/bookstore-api/internal/api/shared"
	"github.com/phrazzld/bookstore-api/internal/platform/logger"
	"github.com/phrazzld/bookstore-api/internal/platform/ratelimit"
	"github.com/phrazzld/bookstore-api/internal/redact"
)

// KeyFunc derives the rate limit key for a request.
type KeyFunc func(r *http.Request) string

// ClientKey keys authenticated requests by token subject and everything
// else by client IP.
func ClientKey(r *http.Request) string {
	if claims, ok := ClaimsFromContext(r.Context()); ok && claims.Subject != "" {
		return "sub:" + claims.Subject
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil && host != "" {
		return "ip:" + host
	}
	if r.RemoteAddr != "" {
		return "ip:" + r.RemoteAddr
	}
	return "ip:unknown"
}

// RateLimit rejects requests over the limiter's budget with a 429 fault
// and a Retry-After header. When the limiter itself fails the request is
// let through.
func RateLimit(limiter ratelimit.Limiter, keyFn KeyFunc) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientKey
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)

			dec, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.FromContextOrDefault(r.Context(), slog.Default()).Warn("rate limiter unavailable",
					slog.String("error", redact.Error(err)))
				next.ServeHTTP(w, r)
				return
			}

			if !dec.Allowed {
				incrementRateLimited(strings.SplitN(key, ":", 2)[0])
				seconds := int(math.Ceil(dec.RetryAfter.Seconds()))
				if seconds < 1 {
					seconds = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(seconds))
				shared.RespondWithError(w, r, shared.NewHTTPError(http.StatusTooManyRequests, "Too Many Attempts."))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
