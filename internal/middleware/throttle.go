package middleware

import (
	"net"
	"net/http"
	"time"

	"blog-api/pkg/errors"
	"blog-api/pkg/logger"
	"blog-api/pkg/redis"
)

// ThrottleConfig bounds how many requests a single client may make to a route
// within a fixed window
type ThrottleConfig struct {
	Route    string
	Requests int64
	Window   time.Duration
}

// Throttle creates a fixed-window per-IP rate limit middleware backed by a
// Redis counter. A nil Redis client disables throttling.
func Throttle(cfg ThrottleConfig, client *redis.Client, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client == nil {
				next.ServeHTTP(w, r)
				return
			}

			key := client.KeyBuilder.KeyThrottle(cfg.Route, clientIP(r))

			count, err := client.Incr(r.Context(), key)
			if err != nil {
				// Redis trouble should not lock everyone out
				logger.WithError(err).Warn("Throttle counter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			if count == 1 {
				if err := client.Expire(r.Context(), key, cfg.Window); err != nil {
					logger.WithError(err).Warn("Failed to set throttle window expiry")
				}
			}

			if count > cfg.Requests {
				logger.WithFields(map[string]interface{}{
					"route": cfg.Route,
					"count": count,
				}).Warn("Rate limit exceeded")
				writeErrorResponse(w, errors.NewRateLimitError("Too many requests, try again later"), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP trusts RealIP middleware having rewritten RemoteAddr
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
