package router

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/internal/di"
)

// echoController remembers which dependency root it was constructed with.
type echoController struct {
	deps any
}

func (c *echoController) Prefix() string { return "/echo" }
func (c *echoController) Routes() []Route {
	return []Route{{Method: http.MethodGet, Path: "/", Handler: func(w http.ResponseWriter, r *http.Request) {}}}
}

// cradleRoot is a cradle-bearing container for pipeline tests.
type cradleRoot struct {
	cradle any
}

func (c *cradleRoot) Cradle() any { return c.cradle }

func echoBinding() Binding {
	return Binding{
		Token: "echoController",
		New: func(deps any) (Controller, error) {
			return &echoController{deps: deps}, nil
		},
	}
}

func TestBuildPrefersSmartResolver(t *testing.T) {
	cradle := map[string]any{"svc": "x"}
	deps := BuildDeps{
		Resolver: di.NewResolver(&cradleRoot{cradle: cradle}),
		LegacyResolver: func(di.Binding) (any, error) {
			t.Fatal("legacy resolver must not run when a smart resolver is attached")
			return nil, nil
		},
		LegacyContainer: &struct{}{},
		Container:       &struct{}{},
	}

	ctrl, err := Build(echoBinding(), deps)
	require.NoError(t, err)
	assert.Equal(t, cradle, ctrl.(*echoController).deps)
}

func TestBuildLegacyResolver(t *testing.T) {
	want := &echoController{}
	deps := BuildDeps{
		LegacyResolver: func(b di.Binding) (any, error) {
			assert.Equal(t, "echoController", b.Token)
			return want, nil
		},
		LegacyContainer: &struct{}{},
	}

	ctrl, err := Build(echoBinding(), deps)
	require.NoError(t, err)
	assert.Same(t, want, ctrl)
}

func TestBuildLegacyContainerBeatsCradleContainer(t *testing.T) {
	// Observed priority in the source: a legacy generic container outranks a
	// cradle-bearing container attached without the bridge.
	legacy := &struct{ name string }{name: "legacy"}
	deps := BuildDeps{
		LegacyContainer: legacy,
		Container:       &cradleRoot{cradle: map[string]any{}},
	}

	ctrl, err := Build(echoBinding(), deps)
	require.NoError(t, err)
	assert.Same(t, legacy, ctrl.(*echoController).deps)
}

func TestBuildCradleContainerWithoutResolver(t *testing.T) {
	cradle := map[string]any{"svc": "x"}
	deps := BuildDeps{Container: &cradleRoot{cradle: cradle}}

	ctrl, err := Build(echoBinding(), deps)
	require.NoError(t, err)
	assert.Equal(t, cradle, ctrl.(*echoController).deps)
}

func TestBuildPlainContainer(t *testing.T) {
	container := &struct{ name string }{name: "plain"}
	deps := BuildDeps{Container: container}

	ctrl, err := Build(echoBinding(), deps)
	require.NoError(t, err)
	assert.Same(t, container, ctrl.(*echoController).deps)
}

func TestBuildNoDependencies(t *testing.T) {
	ctrl, err := Build(echoBinding(), BuildDeps{})
	require.NoError(t, err)
	assert.Nil(t, ctrl.(*echoController).deps)
}

func TestBuildConstructionFailurePropagates(t *testing.T) {
	boom := errors.New("missing database")
	b := Binding{
		Token: "broken",
		New: func(deps any) (Controller, error) {
			return nil, boom
		},
	}

	_, err := Build(b, BuildDeps{})
	require.Error(t, err)
	assert.True(t, serrors.IsControllerBuildFailed(err))
	assert.ErrorIs(t, err, boom)
}

func TestBuildResolvedValueMustBeController(t *testing.T) {
	deps := BuildDeps{
		LegacyResolver: func(di.Binding) (any, error) {
			return "not a controller", nil
		},
	}

	_, err := Build(echoBinding(), deps)
	require.Error(t, err)
	assert.True(t, serrors.IsControllerBuildFailed(err))
}
