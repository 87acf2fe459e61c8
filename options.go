package strut

import (
	"net/http"
	"time"

	"github.com/xraph/strut/internal/di"
	"github.com/xraph/strut/internal/openapi"
	"github.com/xraph/strut/internal/router"
	"github.com/xraph/strut/logger"
	"github.com/xraph/strut/middleware"
)

// Option configures a Server before Build.
type Option func(*Server)

// ErrorHandler maps an error to an HTTP response. The default renders the
// structured error JSON body with the status derived from the error chain.
type ErrorHandler func(w http.ResponseWriter, r *http.Request, err error)

// MetricsConfig configures the Prometheus middleware and scrape endpoint.
type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
	Path      string `yaml:"path"`
}

// DefaultMetricsConfig returns metrics defaults with the endpoint at /metrics.
func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Enabled:   false,
		Namespace: "strut",
		Path:      "/metrics",
	}
}

// WithName sets the application name reported by the info endpoint.
func WithName(name string) Option {
	return func(s *Server) {
		s.config.Name = name
	}
}

// WithVersion sets the application version reported by the info endpoint.
func WithVersion(version string) Option {
	return func(s *Server) {
		s.config.Version = version
	}
}

// WithDescription sets the application description.
func WithDescription(description string) Option {
	return func(s *Server) {
		s.config.Description = description
	}
}

// WithEnvironment sets the deployment environment label.
func WithEnvironment(env string) Option {
	return func(s *Server) {
		s.config.Environment = env
	}
}

// WithAddress sets the listen address. Default ":8080".
func WithAddress(address string) Option {
	return func(s *Server) {
		s.config.Address = address
	}
}

// WithShutdownTimeout bounds graceful shutdown in Run.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.config.ShutdownTimeout = d
	}
}

// WithLogging configures the zap-backed logger.
func WithLogging(config logger.LoggingConfig) Option {
	return func(s *Server) {
		s.config.Logging = config
	}
}

// WithLogger installs a pre-built logger, bypassing WithLogging.
func WithLogger(log logger.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithCORS enables the CORS middleware.
func WithCORS(config middleware.CORSConfig) Option {
	return func(s *Server) {
		s.cors = &config
	}
}

// WithRequestID toggles the request-id middleware. Enabled by default.
func WithRequestID(enabled bool) Option {
	return func(s *Server) {
		s.requestID = enabled
	}
}

// WithRateLimit enables the per-client rate-limit middleware.
func WithRateLimit(config middleware.RateLimitConfig) Option {
	return func(s *Server) {
		s.rateLimit = &config
	}
}

// WithMetrics enables the Prometheus middleware and scrape endpoint.
func WithMetrics(config MetricsConfig) Option {
	return func(s *Server) {
		s.config.Metrics = config
	}
}

// WithErrorHandler overrides the default error response rendering. It is
// used for unmatched routes and disallowed methods.
func WithErrorHandler(handler ErrorHandler) Option {
	return func(s *Server) {
		s.errorHandler = handler
	}
}

// WithSwagger enables OpenAPI document generation from mounted routes.
func WithSwagger(config openapi.Config) Option {
	return func(s *Server) {
		s.swagger = &config
	}
}

// WithSwaggerUI configures the Swagger UI routes. Requires WithSwagger.
func WithSwaggerUI(config openapi.UIConfig) Option {
	return func(s *Server) {
		s.swaggerUI = config
	}
}

// WithContainer connects an IoC container through the smart resolver.
// Classification runs once, here. The resolver drives controller
// construction and, when the container can create scopes, per-request
// scoping.
func WithContainer(container any, opts ...di.Option) Option {
	return func(s *Server) {
		s.container = container
		s.resolver = di.NewResolver(container, opts...)
	}
}

// WithDependencyInjection configures the legacy DI surface: an optional
// resolver function consulted for every controller token, and a fallback
// container handed to constructors. Superseded by WithContainer when both
// are present.
func WithDependencyInjection(container any, resolver func(di.Binding) (any, error)) Option {
	return func(s *Server) {
		s.legacyContainer = container
		s.legacyResolver = resolver
	}
}

// WithScoping overrides the request scoping defaults.
func WithScoping(config di.ScopingConfig) Option {
	return func(s *Server) {
		s.config.Scoping = config
	}
}

// WithAuthProvider registers a named authentication provider referenced by
// route and controller auth rules.
func WithAuthProvider(provider router.AuthProvider) Option {
	return func(s *Server) {
		s.authProviders[provider.Name()] = provider
	}
}

// WithConfig applies a loaded file configuration. Options applied after it
// still win.
func WithConfig(config Config) Option {
	return func(s *Server) {
		s.config = config
	}
}
