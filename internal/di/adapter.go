package di

import (
	"reflect"
	"strings"

	serrors "github.com/xraph/strut/errors"
)

// Binding identifies a constructible unit (typically a controller) to the
// resolver: the token a container may know it by, and a constructor taking
// the dependency root. New receives the cradle for cradle-style containers
// and the raw container otherwise; it may receive nil when no container is
// attached at all.
type Binding struct {
	Token string
	New   func(deps any) (any, error)
}

// adapter binds a classified container to the resolution strategies for its
// kind. It is built once per resolver; the strategies are closures over the
// capability members discovered at classification time, so resolution never
// re-inspects the container.
type adapter struct {
	kind         Kind
	root         func() any
	resolveClass func(b Binding) (any, error)
	resolveNamed func(name string) (any, error)
}

func newAdapter(container any, kind Kind) adapter {
	switch kind {
	case KindCradle:
		return newCradleAdapter(container)
	case KindGet:
		return newGetAdapter(container)
	case KindResolve:
		return newResolveAdapter(container)
	default:
		return newGenericAdapter(container)
	}
}

func newCradleAdapter(container any) adapter {
	cradler, _ := container.(Cradler)
	root := func() any {
		if cradler == nil {
			return nil
		}
		return cradler.Cradle()
	}

	return adapter{
		kind: KindCradle,
		root: root,
		resolveClass: func(b Binding) (any, error) {
			cradle := root()
			if cradle == nil {
				// An absent cradle under a cradle classification is a
				// programming error on the caller's side; there is no
				// meaningful fallback.
				return nil, serrors.ErrCradleAbsent()
			}
			return b.New(cradle)
		},
		resolveNamed: func(name string) (any, error) {
			cradle := root()
			if cradle == nil {
				return nil, serrors.ErrCradleAbsent()
			}
			return lookupCradle(cradle, name)
		},
	}
}

func newGetAdapter(container any) adapter {
	getter, _ := container.(Getter)

	return adapter{
		kind: KindGet,
		root: func() any { return container },
		resolveClass: func(b Binding) (any, error) {
			if getter != nil {
				if v, err := getter.Get(b.Token); err == nil {
					return v, nil
				}
				// Constructor injection is always a safe fallback for a
				// class the container cannot resolve; the lookup failure is
				// dropped, not re-raised.
			}
			return b.New(container)
		},
		resolveNamed: func(name string) (any, error) {
			if getter == nil {
				return nil, serrors.ErrDependencyNotFound(name)
			}
			return getter.Get(name)
		},
	}
}

func newResolveAdapter(container any) adapter {
	resolver, _ := container.(NamedResolver)

	return adapter{
		kind: KindResolve,
		root: func() any { return container },
		resolveClass: func(b Binding) (any, error) {
			if resolver != nil {
				if v, err := resolver.Resolve(b.Token); err == nil {
					return v, nil
				}
			}
			return b.New(container)
		},
		resolveNamed: func(name string) (any, error) {
			if resolver == nil {
				return nil, serrors.ErrDependencyNotFound(name)
			}
			return resolver.Resolve(name)
		},
	}
}

func newGenericAdapter(container any) adapter {
	return adapter{
		kind: KindGeneric,
		root: func() any { return container },
		resolveClass: func(b Binding) (any, error) {
			// Generic containers cannot resolve by class token; constructor
			// injection with the raw container is the only path.
			return b.New(container)
		},
		resolveNamed: func(name string) (any, error) {
			if resolver, ok := container.(NamedResolver); ok {
				return resolver.Resolve(name)
			}
			return nil, serrors.ErrDependencyNotFound(name)
		},
	}
}

// lookupCradle indexes into a cradle by name. Map cradles are indexed
// directly; struct cradles are matched on exported field names, case
// insensitively. Absence is an error: the caller asked for something
// specific and there is no safe fallback for an unknown name.
func lookupCradle(cradle any, name string) (any, error) {
	if m, ok := cradle.(map[string]any); ok {
		if v, ok := m[name]; ok {
			return v, nil
		}
		return nil, serrors.ErrDependencyNotFound(name)
	}

	v := reflect.ValueOf(cradle)
	if v.Kind() == reflect.Map && v.Type().Key().Kind() == reflect.String {
		entry := v.MapIndex(reflect.ValueOf(name))
		if entry.IsValid() {
			return entry.Interface(), nil
		}
		return nil, serrors.ErrDependencyNotFound(name)
	}

	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() == reflect.Struct {
		field := v.FieldByNameFunc(func(n string) bool {
			return strings.EqualFold(n, name)
		})
		if field.IsValid() && field.CanInterface() {
			return field.Interface(), nil
		}
	}

	return nil, serrors.ErrDependencyNotFound(name)
}
