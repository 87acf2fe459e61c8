// Package strut is a convenience layer for building HTTP APIs on chi. It
// offers declarative controllers, a fluent server builder, and a DI bridge
// that adapts arbitrary inversion-of-control containers to a uniform
// resolution protocol with per-request scoping.
package strut

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/internal/di"
	"github.com/xraph/strut/internal/openapi"
	"github.com/xraph/strut/internal/router"
	"github.com/xraph/strut/logger"
	"github.com/xraph/strut/middleware"
)

// Server hosts controllers behind a chi router. Configure it with options,
// register controllers, then Build and Start (or Run, which blocks until a
// shutdown signal).
type Server struct {
	config Config
	log    logger.Logger

	mux     chi.Router
	mounter *router.Mounter
	httpSrv *http.Server

	listener net.Listener

	bindings    []router.Binding
	controllers []router.Controller

	container       any
	resolver        *di.Resolver
	legacyContainer any
	legacyResolver  func(di.Binding) (any, error)
	scopes          *di.ScopeManager

	cors      *middleware.CORSConfig
	rateLimit *middleware.RateLimitConfig
	requestID bool

	errorHandler ErrorHandler

	swagger   *openapi.Config
	swaggerUI openapi.UIConfig

	authProviders map[string]router.AuthProvider

	metrics *middleware.Metrics

	built     bool
	buildMu   sync.Mutex
	startTime time.Time
}

// New creates a server from options. Nothing is built or bound yet; Build
// or Start finalizes the configuration.
func New(opts ...Option) *Server {
	s := &Server{
		config:        DefaultConfig(),
		requestID:     true,
		swaggerUI:     openapi.DefaultUIConfig(),
		authProviders: make(map[string]router.AuthProvider),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RegisterController queues a controller binding. The token is the name the
// container may know the controller by; the constructor is the fallback
// taking the dependency root. Construction happens once, during Build.
func (s *Server) RegisterController(token string, ctor func(deps any) (router.Controller, error)) *Server {
	s.bindings = append(s.bindings, router.Binding{Token: token, New: ctor})
	return s
}

// MountController registers an already-constructed controller, skipping the
// instantiation pipeline.
func (s *Server) MountController(ctrl router.Controller) *Server {
	s.controllers = append(s.controllers, ctrl)
	return s
}

// Build constructs every registered controller, mounts routes and system
// endpoints, and assembles the middleware chain. It is idempotent; the first
// error aborts and leaves the server unbuilt.
func (s *Server) Build() error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()
	if s.built {
		return nil
	}

	if s.log == nil {
		s.log = logger.NewLogger(s.config.Logging)
	}

	mux := chi.NewRouter()
	s.applyMiddleware(mux)

	if s.resolver != nil {
		s.scopes = di.NewScopeManager(s.resolver.Container(), s.config.Scoping, s.log)
		mux.Use(s.scopes.Middleware())
	}

	mounter := router.NewMounter(mux, s.log, s.authProviders)
	deps := router.BuildDeps{
		Resolver:        s.resolver,
		LegacyResolver:  s.legacyResolver,
		LegacyContainer: s.legacyContainer,
		Container:       s.container,
	}

	for _, b := range s.bindings {
		ctrl, err := router.Build(b, deps)
		if err != nil {
			return serrors.ErrLifecycleError("build", err)
		}
		if err := mounter.Mount(ctrl); err != nil {
			return serrors.ErrLifecycleError("build", err)
		}
	}
	for _, ctrl := range s.controllers {
		if err := mounter.Mount(ctrl); err != nil {
			return serrors.ErrLifecycleError("build", err)
		}
	}

	s.mountSystemRoutes(mux, mounter)

	handleError := s.errorHandler
	if handleError == nil {
		handleError = func(w http.ResponseWriter, r *http.Request, err error) {
			router.WriteError(w, err)
		}
	}
	mux.NotFound(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, serrors.NotFound("route not found"))
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		handleError(w, r, serrors.NewHTTPError(http.StatusMethodNotAllowed, "method not allowed"))
	})

	if s.startTime.IsZero() {
		s.startTime = time.Now()
	}
	s.mux = mux
	s.mounter = mounter
	s.httpSrv = &http.Server{
		Addr:    s.config.Address,
		Handler: mux,
	}
	s.built = true

	s.log.Info("server built",
		logger.String("name", s.config.Name),
		logger.Int("routes", len(mounter.Routes())),
	)
	return nil
}

func (s *Server) applyMiddleware(mux chi.Router) {
	if s.requestID {
		mux.Use(middleware.RequestID())
	}
	mux.Use(middleware.Recovery(s.log))
	if s.config.Logging.Enabled {
		mux.Use(middleware.Logging(s.log))
	}
	if s.cors != nil {
		mux.Use(middleware.CORS(*s.cors))
	}
	if s.rateLimit != nil {
		mux.Use(middleware.RateLimit(*s.rateLimit))
	}
	if s.config.Metrics.Enabled {
		s.metrics = middleware.NewMetrics(s.config.Metrics.Namespace)
		mux.Use(s.metrics.Middleware())
	}
}

func (s *Server) mountSystemRoutes(mux chi.Router, mounter *router.Mounter) {
	mux.Get("/_/health", func(w http.ResponseWriter, r *http.Request) {
		router.WriteJSON(w, http.StatusOK, map[string]any{
			"status": "ok",
			"uptime": time.Since(s.startTime).String(),
		})
	})
	mux.Get("/_/info", func(w http.ResponseWriter, r *http.Request) {
		router.WriteJSON(w, http.StatusOK, AppInfo{
			Name:        s.config.Name,
			Version:     s.config.Version,
			Description: s.config.Description,
			Environment: s.config.Environment,
			StartTime:   s.startTime,
			Uptime:      time.Since(s.startTime).String(),
			GoVersion:   runtime.Version(),
			Routes:      len(mounter.Routes()),
		})
	})

	if s.config.Metrics.Enabled && s.metrics != nil {
		path := s.config.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		mux.Handle(path, s.metrics.Handler())
	}

	if s.swagger != nil {
		doc := openapi.Generate(*s.swagger, mounter.Routes())
		prefix := s.swaggerUI.RoutePrefix
		if prefix == "" {
			prefix = openapi.DefaultUIConfig().RoutePrefix
		}
		specPath := router.JoinPath(prefix, "openapi.json")
		mux.Get(specPath, openapi.SpecHandler(doc))
		if s.swaggerUI.Enabled {
			mux.Get(prefix, openapi.UIHandler(s.swagger.Info.Title, specPath, s.swaggerUI.UIConfig))
		}
	}
}

// Start builds the server if needed and begins serving in the background.
// The returned error covers build and listen failures only; serve errors
// after startup are logged.
func (s *Server) Start(ctx context.Context) error {
	if err := s.Build(); err != nil {
		return err
	}

	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return serrors.ErrLifecycleError("start", err)
	}
	s.listener = ln
	s.startTime = time.Now()

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("server error", logger.Error(err))
		}
	}()

	s.log.Info("server started",
		logger.String("address", ln.Addr().String()),
		logger.String("environment", s.config.Environment),
	)
	return nil
}

// Stop gracefully shuts the HTTP server down and disposes the container
// root when scoping is configured to do so.
func (s *Server) Stop(ctx context.Context) error {
	var shutdownErr error
	if s.httpSrv != nil && s.listener != nil {
		shutdownErr = s.httpSrv.Shutdown(ctx)
	}
	if s.scopes != nil {
		s.scopes.Close(ctx)
	}
	s.log.Info("server stopped")
	if shutdownErr != nil {
		return serrors.ErrLifecycleError("stop", shutdownErr)
	}
	return nil
}

// Run starts the server and blocks until SIGINT or SIGTERM, then shuts
// down within the configured timeout.
func (s *Server) Run() error {
	if err := s.Start(context.Background()); err != nil {
		return err
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	s.log.Info("shutdown signal received", logger.String("signal", sig.String()))

	ctx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	return s.Stop(ctx)
}

// Addr reports the bound listen address, useful when the configured address
// uses port 0.
func (s *Server) Addr() string {
	if s.listener == nil {
		return s.config.Address
	}
	return s.listener.Addr().String()
}

// Router exposes the underlying chi router. Nil before Build.
func (s *Server) Router() chi.Router {
	return s.mux
}

// Handler returns the root handler for tests and embedding. Nil before
// Build.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Container returns the container registered through WithContainer or
// WithDependencyInjection, preferring the former.
func (s *Server) Container() any {
	if s.container != nil {
		return s.container
	}
	return s.legacyContainer
}

// Resolver returns the smart resolver, or nil when no container was
// registered through WithContainer.
func (s *Server) Resolver() *di.Resolver {
	return s.resolver
}

// Logger returns the server logger. Nil before Build unless WithLogger was
// used.
func (s *Server) Logger() logger.Logger {
	return s.log
}

// Routes reports metadata for every mounted route. Empty before Build.
func (s *Server) Routes() []router.RouteInfo {
	if s.mounter == nil {
		return nil
	}
	return s.mounter.Routes()
}

// AppInfo is the payload of the /_/info endpoint.
type AppInfo struct {
	Name        string    `json:"name"`
	Version     string    `json:"version"`
	Description string    `json:"description,omitempty"`
	Environment string    `json:"environment"`
	StartTime   time.Time `json:"start_time"`
	Uptime      string    `json:"uptime"`
	GoVersion   string    `json:"go_version"`
	Routes      int       `json:"routes"`
}
