package strut

import (
	"github.com/xraph/strut/internal/di"
)

// Container capability interfaces. A container opts into richer handling by
// implementing any of these; plain values fall back to constructor
// injection.
type (
	Cradler       = di.Cradler
	Getter        = di.Getter
	NamedResolver = di.NamedResolver
	Scope         = di.Scope
	Scoper        = di.Scoper
	Disposer      = di.Disposer
)

// Kind identifies the detected container protocol.
type Kind = di.Kind

const (
	KindGeneric = di.KindGeneric
	KindCradle  = di.KindCradle
	KindGet     = di.KindGet
	KindResolve = di.KindResolve
)

// Binding pairs a controller token with its constructor-injection fallback.
type Binding = di.Binding

// Resolver adapts a classified container to a uniform resolution protocol.
type Resolver = di.Resolver

// ResolverOption customizes container classification.
type ResolverOption = di.Option

var (
	// NewResolver classifies a container and builds its resolution
	// strategies. Classification runs exactly once.
	NewResolver = di.NewResolver

	// Classify reports a container's kind without side effects.
	Classify = di.Classify

	// WithKind overrides auto-detection with an explicit container kind.
	WithKind = di.WithKind

	// WithAutoDetect disables capability probing when false; without an
	// explicit kind the container is treated as generic.
	WithAutoDetect = di.WithAutoDetect
)

// ScopingConfig holds the request scoping toggles.
type ScopingConfig = di.ScopingConfig

// DefaultScopingConfig enables scoping with disposal on response and close.
var DefaultScopingConfig = di.DefaultScopingConfig

// RequestScope is the per-request scope slot installed by the scope
// middleware.
type RequestScope = di.RequestScope

var (
	// ScopeFrom returns the request scope for ctx, creating it lazily.
	ScopeFrom = di.ScopeFrom

	// RequestScopeFrom returns the raw scope slot, or nil outside a scoped
	// request.
	RequestScopeFrom = di.RequestScopeFrom
)
