package router

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xraph/strut/logger"
)

type usersController struct {
	mwOrder *[]string
}

func (c *usersController) Prefix() string { return "/users/" }

func (c *usersController) Name() string { return "users" }

func (c *usersController) Middleware() []Middleware {
	return []Middleware{c.record("controller")}
}

func (c *usersController) record(tag string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*c.mwOrder = append(*c.mwOrder, tag)
			next.ServeHTTP(w, r)
		})
	}
}

func (c *usersController) Routes() []Route {
	return []Route{
		{
			Method:     http.MethodGet,
			Path:       "/{id}/",
			Middleware: []Middleware{c.record("route")},
			Handler: func(w http.ResponseWriter, r *http.Request) {
				*c.mwOrder = append(*c.mwOrder, "handler")
				WriteJSON(w, http.StatusOK, map[string]string{"id": chi.URLParam(r, "id")})
			},
		},
	}
}

func TestMountComposesPathAndMiddleware(t *testing.T) {
	mux := chi.NewRouter()
	m := NewMounter(mux, logger.NewNopLogger(), nil)

	var order []string
	require.NoError(t, m.Mount(&usersController{mwOrder: &order}))

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users/42", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"id":"42"}`, rec.Body.String())
	assert.Equal(t, []string{"controller", "route", "handler"}, order,
		"controller middleware wraps route middleware wraps the handler")

	routes := m.Routes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/users/{id}", routes[0].Path)
	assert.Equal(t, "users", routes[0].Controller)
	assert.Equal(t, "GET /users/{id}", routes[0].Name)
}

func TestMountRejectsRouteWithoutHandler(t *testing.T) {
	mux := chi.NewRouter()
	m := NewMounter(mux, logger.NewNopLogger(), nil)

	err := m.Mount(&brokenController{})
	assert.Error(t, err)
}

type brokenController struct{}

func (c *brokenController) Prefix() string  { return "" }
func (c *brokenController) Routes() []Route { return []Route{{Method: http.MethodGet, Path: "/x"}} }

type createUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

type signupController struct{}

func (c *signupController) Prefix() string { return "/signup" }

func (c *signupController) Routes() []Route {
	return []Route{
		{
			Method: http.MethodPost,
			Path:   "/",
			Schema: createUserRequest{},
			Handler: func(w http.ResponseWriter, r *http.Request) {
				body := ValidatedBody(r.Context()).(*createUserRequest)
				WriteJSON(w, http.StatusCreated, map[string]string{"name": body.Name})
			},
		},
	}
}

func TestMountSchemaValidation(t *testing.T) {
	mux := chi.NewRouter()
	m := NewMounter(mux, logger.NewNopLogger(), nil)
	require.NoError(t, m.Mount(&signupController{}))

	tests := []struct {
		name string
		body string
		want int
	}{
		{"valid body", `{"name":"ada","email":"ada@example.com"}`, http.StatusCreated},
		{"missing field", `{"name":"ada"}`, http.StatusUnprocessableEntity},
		{"invalid email", `{"name":"ada","email":"nope"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"name":`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/signup", strings.NewReader(tt.body))
			mux.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

type headerAuthProvider struct {
	name   string
	token  string
	scopes []string
}

func (p *headerAuthProvider) Name() string { return p.name }

func (p *headerAuthProvider) Authenticate(r *http.Request) (any, []string, error) {
	if r.Header.Get("X-API-Key") != p.token {
		return nil, nil, errors.New("bad key")
	}
	return "user:" + p.name, p.scopes, nil
}

type adminController struct{}

func (c *adminController) Prefix() string { return "/admin" }

func (c *adminController) Auth() *AuthRule {
	return &AuthRule{Providers: []string{"api-key"}}
}

func (c *adminController) Routes() []Route {
	return []Route{
		{
			Method: http.MethodGet,
			Path:   "/status",
			Handler: func(w http.ResponseWriter, r *http.Request) {
				WriteJSON(w, http.StatusOK, map[string]any{"principal": Principal(r.Context())})
			},
		},
		{
			Method: http.MethodDelete,
			Path:   "/users",
			Auth:   &AuthRule{Providers: []string{"api-key"}, Scopes: []string{"admin"}},
			Handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
		},
	}
}

func TestMountAuth(t *testing.T) {
	mux := chi.NewRouter()
	providers := map[string]AuthProvider{
		"api-key": &headerAuthProvider{name: "api-key", token: "s3cret", scopes: []string{"read"}},
	}
	m := NewMounter(mux, logger.NewNopLogger(), providers)
	require.NoError(t, m.Mount(&adminController{}))

	t.Run("valid credentials pass", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin/status", nil)
		req.Header.Set("X-API-Key", "s3cret")
		mux.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "user:api-key")
	})

	t.Run("missing credentials rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/status", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("missing required scope rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodDelete, "/admin/users", nil)
		req.Header.Set("X-API-Key", "s3cret")
		mux.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("route marked protected", func(t *testing.T) {
		for _, info := range m.Routes() {
			assert.True(t, info.Protected)
		}
	})
}
