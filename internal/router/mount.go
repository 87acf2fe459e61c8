package router

import (
	"context"
	"net/http"
	"reflect"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	serrors "github.com/xraph/strut/errors"
	"github.com/xraph/strut/logger"
)

// Mounter wires controller instances onto the host chi router. It owns the
// request schema validator and the auth provider registry consulted during
// mounting.
type Mounter struct {
	mux       chi.Router
	log       logger.Logger
	validate  *validator.Validate
	providers map[string]AuthProvider
	routes    []RouteInfo
}

// NewMounter creates a mounter over the given chi router.
func NewMounter(mux chi.Router, log logger.Logger, providers map[string]AuthProvider) *Mounter {
	if log == nil {
		log = logger.NewNopLogger()
	}
	if providers == nil {
		providers = make(map[string]AuthProvider)
	}
	return &Mounter{
		mux:       mux,
		log:       log.Named("router"),
		validate:  validator.New(),
		providers: providers,
	}
}

// Mount registers all of the controller's routes under its prefix, with the
// fully composed path and the middleware chain assembled as: controller
// middleware, auth, route middleware, schema validation, handler.
func (m *Mounter) Mount(ctrl Controller) error {
	name := controllerName(ctrl)

	var ctrlMiddleware []Middleware
	if c, ok := ctrl.(ControllerWithMiddleware); ok {
		ctrlMiddleware = c.Middleware()
	}

	var ctrlAuth *AuthRule
	if c, ok := ctrl.(ControllerWithAuth); ok {
		ctrlAuth = c.Auth()
	}

	for _, rt := range ctrl.Routes() {
		if rt.Handler == nil {
			return serrors.ErrConfigError("route "+rt.Method+" "+rt.Path+" of controller '"+name+"' has no handler", nil)
		}

		path := JoinPath(ctrl.Prefix(), rt.Path)

		var handler http.Handler = rt.Handler
		if rt.Schema != nil {
			handler = m.validationMiddleware(rt.Schema)(handler)
		}
		handler = chain(rt.Middleware, handler)

		rule := rt.Auth
		if rule == nil {
			rule = ctrlAuth
		}
		if rule != nil {
			handler = m.authMiddleware(rule)(handler)
		}
		handler = chain(ctrlMiddleware, handler)

		m.mux.Method(rt.Method, path, handler)

		routeName := rt.Name
		if routeName == "" {
			routeName = rt.Method + " " + path
		}
		m.routes = append(m.routes, RouteInfo{
			Name:        routeName,
			Method:      rt.Method,
			Path:        path,
			Controller:  name,
			Summary:     rt.Summary,
			Description: rt.Description,
			Tags:        rt.Tags,
			Schema:      rt.Schema,
			Responses:   rt.Responses,
			Deprecated:  rt.Deprecated,
			Protected:   rule != nil,
		})

		m.log.Debug("route registered",
			logger.String("controller", name),
			logger.String("method", rt.Method),
			logger.String("path", path),
		)
	}

	return nil
}

// Routes returns the mounted routes for inspection and documentation.
func (m *Mounter) Routes() []RouteInfo {
	out := make([]RouteInfo, len(m.routes))
	copy(out, m.routes)
	return out
}

func controllerName(ctrl Controller) string {
	if c, ok := ctrl.(ControllerWithName); ok {
		return c.Name()
	}
	t := reflect.TypeOf(ctrl)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t.Name()
}

func chain(middleware []Middleware, handler http.Handler) http.Handler {
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}
	return handler
}

type validatedBodyKey struct{}

// validationMiddleware decodes the request body into a fresh instance of
// the route's schema type and validates it before the handler runs.
func (m *Mounter) validationMiddleware(schema any) Middleware {
	typ := reflect.TypeOf(schema)
	for typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			target := reflect.New(typ).Interface()

			if err := json.NewDecoder(r.Body).Decode(target); err != nil {
				WriteError(w, serrors.BadRequest("malformed request body"))
				return
			}
			if err := m.validate.Struct(target); err != nil {
				WriteError(w, serrors.UnprocessableEntity(err.Error()))
				return
			}

			ctx := context.WithValue(r.Context(), validatedBodyKey{}, target)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ValidatedBody returns the decoded, validated request body for routes that
// declared a schema, as a pointer to the schema type.
func ValidatedBody(ctx context.Context) any {
	return ctx.Value(validatedBodyKey{})
}

type principalKey struct{}

// authMiddleware enforces an auth rule: providers are tried in order and
// any one succeeding allows access, provided it grants every required
// scope.
func (m *Mounter) authMiddleware(rule *AuthRule) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, name := range rule.Providers {
				provider, ok := m.providers[name]
				if !ok {
					m.log.Warn("unknown auth provider referenced by route",
						logger.String("provider", name))
					continue
				}

				principal, scopes, err := provider.Authenticate(r)
				if err != nil {
					continue
				}
				if !hasScopes(scopes, rule.Scopes) {
					continue
				}

				ctx := context.WithValue(r.Context(), principalKey{}, principal)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			WriteError(w, serrors.Unauthorized("authentication required"))
		})
	}
}

// Principal returns the authenticated principal set by a succeeding auth
// provider, or nil on unprotected routes.
func Principal(ctx context.Context) any {
	return ctx.Value(principalKey{})
}

func hasScopes(granted, required []string) bool {
	if len(required) == 0 {
		return true
	}
	set := make(map[string]bool, len(granted))
	for _, s := range granted {
		set[s] = true
	}
	for _, s := range required {
		if !set[s] {
			return false
		}
	}
	return true
}
