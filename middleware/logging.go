package middleware

import (
	"net/http"
	"time"

	"github.com/xraph/strut/logger"
)

// LoggingConfig defines configuration for logging middleware
type LoggingConfig struct {
	// ExcludePaths defines paths to exclude from logging
	ExcludePaths []string
}

// DefaultLoggingConfig returns default logging configuration
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		ExcludePaths: []string{"/_/health", "/metrics"},
	}
}

// Logging middleware logs HTTP requests with timing information
func Logging(log logger.Logger) func(http.Handler) http.Handler {
	return LoggingWithConfig(log, DefaultLoggingConfig())
}

// LoggingWithConfig middleware logs HTTP requests with custom configuration
func LoggingWithConfig(log logger.Logger, config LoggingConfig) func(http.Handler) http.Handler {
	excluded := make(map[string]bool, len(config.ExcludePaths))
	for _, path := range config.ExcludePaths {
		excluded[path] = true
	}

	log = log.Named("http")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if excluded[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			wrapped := NewResponseWriter(w)

			next.ServeHTTP(wrapped, r)

			log.Info("request completed",
				logger.String("method", r.Method),
				logger.String("path", r.URL.Path),
				logger.Int("status", wrapped.Status()),
				logger.Int("size", wrapped.Size()),
				logger.Duration("duration", time.Since(start)),
				logger.String("request_id", GetRequestID(r.Context())),
			)
		})
	}
}
