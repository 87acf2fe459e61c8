package di

import (
	"context"
)

// Kind identifies the resolution protocol a container speaks. Once a
// resolver has been constructed for a container, its kind never changes.
type Kind int

const (
	// KindGeneric is the catch-all: the container exposes no recognized
	// protocol and is handed straight to controller constructors.
	KindGeneric Kind = iota

	// KindCradle marks containers exposing a flat collection of resolved
	// dependencies through a Cradle accessor.
	KindCradle

	// KindGet marks containers with a Get lookup member.
	KindGet

	// KindResolve marks containers with a Resolve lookup member.
	KindResolve
)

func (k Kind) String() string {
	switch k {
	case KindCradle:
		return "cradle"
	case KindGet:
		return "get"
	case KindResolve:
		return "resolve"
	default:
		return "generic"
	}
}

// Cradler is implemented by containers that expose a flat object of
// resolved dependencies. Cradle must be a pure accessor: classification
// calls it but performs no resolution through it.
type Cradler interface {
	Cradle() any
}

// Getter is implemented by containers with name-keyed lookup.
type Getter interface {
	Get(name string) (any, error)
}

// NamedResolver is implemented by containers with name-keyed lookup under
// the Resolve protocol.
type NamedResolver interface {
	Resolve(name string) (any, error)
}

// Scope is a child container created per unit of work, typically one HTTP
// request. The scope itself acts as a dependency root; callers may assert
// the container capabilities on it. Dispose releases the scope's resources
// and is called at most once.
type Scope interface {
	Dispose(ctx context.Context) error
}

// Scoper is implemented by containers able to create per-request scopes.
type Scoper interface {
	CreateScope(ctx context.Context) (Scope, error)
}

// Disposer is implemented by containers whose root resources need release
// at server shutdown.
type Disposer interface {
	Dispose(ctx context.Context) error
}

// Classify determines the container kind by capability probing in a fixed
// priority order: cradle, get, resolve, generic. A container exhibiting
// several shapes therefore classifies deterministically. The probe never
// performs a lookup and runs in constant time; a container matching nothing
// is generic, never an error.
func Classify(container any) Kind {
	if c, ok := container.(Cradler); ok && c.Cradle() != nil {
		return KindCradle
	}
	if _, ok := container.(Getter); ok {
		return KindGet
	}
	if _, ok := container.(NamedResolver); ok {
		return KindResolve
	}
	return KindGeneric
}

// Option configures a Resolver.
type Option func(*options)

type options struct {
	kind       *Kind
	autoDetect bool
}

// WithKind forces the container kind, skipping structural inspection.
func WithKind(k Kind) Option {
	return func(o *options) {
		o.kind = &k
	}
}

// WithAutoDetect enables or disables structural inspection. When disabled
// and no explicit kind is set, the container is treated as generic.
// Auto-detection is on by default.
func WithAutoDetect(enabled bool) Option {
	return func(o *options) {
		o.autoDetect = enabled
	}
}
