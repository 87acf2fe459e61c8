package di

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/logger"
)

// ScopingConfig controls request scoping and disposal behavior.
type ScopingConfig struct {
	// EnableRequestScoping gates scope creation entirely.
	EnableRequestScoping bool `yaml:"enableRequestScoping"`

	// DisposeOnResponse gates per-request disposal when the request
	// completes, on the success and the error path alike.
	DisposeOnResponse bool `yaml:"disposeOnResponse"`

	// DisposeOnClose gates root container disposal at server shutdown.
	DisposeOnClose bool `yaml:"disposeOnClose"`

	// EagerCreation creates the scope at request start instead of on first
	// access through ScopeFrom.
	EagerCreation bool `yaml:"eagerCreation"`
}

// DefaultScopingConfig enables scoping and both disposal hooks.
func DefaultScopingConfig() ScopingConfig {
	return ScopingConfig{
		EnableRequestScoping: true,
		DisposeOnResponse:    true,
		DisposeOnClose:       true,
		EagerCreation:        false,
	}
}

// ScopeManager creates one child scope per inbound request from a
// scoping-capable root container, exposes it lazily to request-handling
// code, and guarantees disposal exactly once per request on every
// completion path. It also owns root container disposal at shutdown.
type ScopeManager struct {
	root      any
	scoper    Scoper
	config    ScopingConfig
	log       logger.Logger
	closeOnce sync.Once
}

// NewScopeManager builds a scope manager for the given root container.
// A root without the Scoper capability yields a manager whose middleware is
// a no-op passthrough.
func NewScopeManager(root any, config ScopingConfig, log logger.Logger) *ScopeManager {
	scoper, _ := root.(Scoper)
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ScopeManager{
		root:   root,
		scoper: scoper,
		config: config,
		log:    log.Named("scope"),
	}
}

// RequestScope tracks the scope state for a single request: no-scope,
// scope-created, scope-disposed. Creation is idempotent and lazy; disposal
// happens at most once.
type RequestScope struct {
	manager *ScopeManager
	id      string

	once  sync.Once
	scope Scope
	err   error

	mu       sync.Mutex
	disposed bool
}

// ID returns the request identity the scope is bound to.
func (rs *RequestScope) ID() string {
	return rs.id
}

// Scope returns the request's scope, creating it on first access. Repeated
// calls within the same request return the identical scope instance and
// invoke the underlying creation primitive exactly once.
func (rs *RequestScope) Scope(ctx context.Context) (Scope, error) {
	rs.once.Do(func() {
		rs.scope, rs.err = rs.manager.scoper.CreateScope(ctx)
		if rs.err != nil {
			rs.err = serrors.ErrScopeError("creation", rs.err).WithContext("request_id", rs.id)
			return
		}
		rs.manager.log.Debug("request scope created", logger.String("request_id", rs.id))
	})
	return rs.scope, rs.err
}

// dispose releases the request's scope if one was ever created. It is safe
// to call more than once; only the first call disposes. Disposal failures
// are logged and swallowed: they must never affect the response already
// produced or in flight.
func (rs *RequestScope) dispose(ctx context.Context) {
	rs.mu.Lock()
	already := rs.disposed
	rs.disposed = true
	scope := rs.scope
	rs.mu.Unlock()

	if already || scope == nil {
		return
	}

	if err := scope.Dispose(ctx); err != nil {
		rs.manager.log.Error("request scope disposal failed",
			logger.String("request_id", rs.id),
			logger.Error(err),
		)
		return
	}
	rs.manager.log.Debug("request scope disposed", logger.String("request_id", rs.id))
}

type scopeContextKey struct{}

// Middleware installs a per-request scope holder on the request context and
// disposes the scope when the request completes. The deferred disposal runs
// on the success path, the error path, and during panic unwinding, so a
// handler failure still triggers exactly one disposal call. A request that
// never accesses its scope owes no disposal.
func (m *ScopeManager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !m.config.EnableRequestScoping || m.scoper == nil {
				next.ServeHTTP(w, r)
				return
			}

			rs := &RequestScope{manager: m, id: uuid.New().String()}
			ctx := context.WithValue(r.Context(), scopeContextKey{}, rs)

			if m.config.DisposeOnResponse {
				defer rs.dispose(ctx)
			}

			if m.config.EagerCreation {
				if _, err := rs.Scope(ctx); err != nil {
					m.log.Error("eager scope creation failed",
						logger.String("request_id", rs.id),
						logger.Error(err),
					)
				}
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ScopeFrom returns the current request's scope, creating it on first
// access. It fails when called outside a scoped request.
func ScopeFrom(ctx context.Context) (Scope, error) {
	rs, ok := ctx.Value(scopeContextKey{}).(*RequestScope)
	if !ok {
		return nil, serrors.ErrScopeError("access", serrors.New("no request scope on context"))
	}
	return rs.Scope(ctx)
}

// RequestScopeFrom returns the raw scope holder, or nil outside a scoped
// request. Most callers want ScopeFrom instead.
func RequestScopeFrom(ctx context.Context) *RequestScope {
	rs, _ := ctx.Value(scopeContextKey{}).(*RequestScope)
	return rs
}

// Close disposes the root container once at shutdown when DisposeOnClose is
// enabled and the root supports disposal. Failures are logged, never
// returned: shutdown completes regardless.
func (m *ScopeManager) Close(ctx context.Context) {
	if !m.config.DisposeOnClose {
		return
	}
	disposer, ok := m.root.(Disposer)
	if !ok {
		return
	}
	m.closeOnce.Do(func() {
		if err := disposer.Dispose(ctx); err != nil {
			m.log.Error("root container disposal failed", logger.Error(err))
			return
		}
		m.log.Debug("root container disposed")
	})
}
