package di

// Resolver adapts an arbitrary IoC container to a uniform resolution
// protocol. The container's kind is determined exactly once at
// construction, either from an explicit override or by structural
// inspection, and is immutable for the resolver's lifetime. Resolvers are
// read-only after construction and safe for use across concurrent requests.
type Resolver struct {
	container any
	adapter   adapter
}

// NewResolver builds a resolver around the given container. Without
// options, the container kind is auto-detected.
func NewResolver(container any, opts ...Option) *Resolver {
	o := options{autoDetect: true}
	for _, opt := range opts {
		opt(&o)
	}

	kind := KindGeneric
	switch {
	case o.kind != nil:
		kind = *o.kind
	case o.autoDetect:
		kind = Classify(container)
	}

	return &Resolver{
		container: container,
		adapter:   newAdapter(container, kind),
	}
}

// Kind returns the container kind retained at construction.
func (r *Resolver) Kind() Kind {
	return r.adapter.kind
}

// Container returns the raw container reference.
func (r *Resolver) Container() any {
	return r.container
}

// Root returns the best available dependency root: the cradle for
// cradle-style containers, the raw container otherwise. Collaborators that
// want direct access use this instead of Resolve/ResolveNamed.
func (r *Resolver) Root() any {
	return r.adapter.root()
}

// Resolve produces an instance for the binding with its dependencies
// satisfied, using the strategy for the retained kind. For get-style and
// resolve-style containers a failed container lookup falls back to
// constructor injection with the raw container; for cradle-style containers
// an absent cradle propagates as an error.
func (r *Resolver) Resolve(b Binding) (any, error) {
	return r.adapter.resolveClass(b)
}

// ResolveNamed looks up a single dependency by name. Lookup failures
// propagate unchanged; there is no fallback for an unknown name.
func (r *Resolver) ResolveNamed(name string) (any, error) {
	return r.adapter.resolveNamed(name)
}
