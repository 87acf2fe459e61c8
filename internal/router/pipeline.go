package router

import (
	"fmt"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/internal/di"
)

// Binding associates a controller constructor with the token a DI container
// may know it by. The constructor receives the dependency root the selected
// instantiation path provides: a cradle, a raw container, or nil.
type Binding struct {
	Token string
	New   func(deps any) (Controller, error)
}

// BuildDeps carries the dependency sources the instantiation pipeline may
// draw on. The fields are consulted in descending priority order.
type BuildDeps struct {
	// Resolver is the smart resolver attached through the DI bridge.
	Resolver *di.Resolver

	// LegacyResolver is a caller-supplied resolution function; its return
	// value is used directly.
	LegacyResolver func(di.Binding) (any, error)

	// LegacyContainer is a caller-supplied generic container passed to
	// constructors as-is.
	LegacyContainer any

	// Container is a container attached without the DI bridge.
	Container any
}

// Build selects exactly one instantiation path for the binding, by strict
// descending priority, and constructs the controller once. Construction
// failures are not caught: a controller that cannot be built makes the
// server non-functional, so the error propagates and aborts startup.
func Build(b Binding, deps BuildDeps) (Controller, error) {
	dib := di.Binding{
		Token: b.Token,
		New: func(d any) (any, error) {
			return b.New(d)
		},
	}

	switch {
	case deps.Resolver != nil:
		v, err := deps.Resolver.Resolve(dib)
		if err != nil {
			return nil, serrors.ErrControllerBuildFailed(b.Token, err)
		}
		return asController(b.Token, v)

	case deps.LegacyResolver != nil:
		v, err := deps.LegacyResolver(dib)
		if err != nil {
			return nil, serrors.ErrControllerBuildFailed(b.Token, err)
		}
		return asController(b.Token, v)

	case deps.LegacyContainer != nil:
		return construct(b, deps.LegacyContainer)

	default:
		if cradler, ok := deps.Container.(di.Cradler); ok {
			if cradle := cradler.Cradle(); cradle != nil {
				return construct(b, cradle)
			}
		}
		if deps.Container != nil {
			return construct(b, deps.Container)
		}
		return construct(b, nil)
	}
}

func construct(b Binding, deps any) (Controller, error) {
	ctrl, err := b.New(deps)
	if err != nil {
		return nil, serrors.ErrControllerBuildFailed(b.Token, err)
	}
	if ctrl == nil {
		return nil, serrors.ErrControllerBuildFailed(b.Token, serrors.New("constructor returned nil"))
	}
	return ctrl, nil
}

func asController(token string, v any) (Controller, error) {
	ctrl, ok := v.(Controller)
	if !ok {
		return nil, serrors.ErrControllerBuildFailed(token,
			fmt.Errorf("resolved value of type %T does not implement Controller", v))
	}
	return ctrl, nil
}
