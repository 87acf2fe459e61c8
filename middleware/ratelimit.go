package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit middleware.
type RateLimitConfig struct {
	Rate            float64                      // requests per second
	Burst           int                          // max burst
	KeyFunc         func(r *http.Request) string // default: remote IP
	CleanupInterval time.Duration                // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration                // remove limiters idle longer than this (default: 5m)
}

// DefaultRateLimitConfig allows 100 req/s with a burst of 200 per client IP.
func DefaultRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Rate:  100,
		Burst: 200,
	}
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit returns middleware that applies per-key token bucket rate
// limiting. Limited requests receive a 429 with a Retry-After header.
func RateLimit(config RateLimitConfig) func(http.Handler) http.Handler {
	if config.KeyFunc == nil {
		config.KeyFunc = func(r *http.Request) string {
			host, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				return r.RemoteAddr
			}
			return host
		}
	}
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	if config.MaxIdle <= 0 {
		config.MaxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup = time.Now()
	)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := config.KeyFunc(r)
			now := time.Now()

			mu.Lock()
			entry, ok := limiters[key]
			if !ok {
				entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(config.Rate), config.Burst)}
				limiters[key] = entry
			}
			entry.lastSeen = now

			if now.Sub(lastCleanup) >= config.CleanupInterval {
				for k, e := range limiters {
					if now.Sub(e.lastSeen) > config.MaxIdle {
						delete(limiters, k)
					}
				}
				lastCleanup = now
			}

			allowed := entry.limiter.Allow()
			mu.Unlock()

			if !allowed {
				w.Header().Set("Retry-After", "1")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
