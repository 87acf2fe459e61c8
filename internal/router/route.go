package router

import (
	"net/http"
)

// Middleware wraps HTTP handlers.
type Middleware func(http.Handler) http.Handler

// Route describes one HTTP operation a controller exposes. Routes are
// explicit, queryable metadata: the mounting layer reads them to register
// handlers and the OpenAPI generator reads them to build the document.
type Route struct {
	// Method is the HTTP method, e.g. http.MethodGet.
	Method string

	// Path is the route's path fragment below the controller prefix.
	// Leading and trailing separators are normalized away during mounting.
	Path string

	// Name optionally identifies the route for inspection. Defaults to
	// "<method> <path>" when empty.
	Name string

	// Handler handles the request. Required.
	Handler http.HandlerFunc

	// Middleware wraps the handler, applied after controller middleware.
	Middleware []Middleware

	// Schema optionally declares the request body type. When set, the body
	// is decoded and validated before the handler runs, and the decoded
	// value is available through ValidatedBody.
	Schema any

	// Responses maps status codes to response schemas for documentation.
	Responses map[int]ResponseDef

	// Auth optionally overrides the controller's authentication rule.
	Auth *AuthRule

	// Documentation metadata.
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
}

// ResponseDef documents one response of a route.
type ResponseDef struct {
	Description string
	Schema      any
}

// AuthRule declares the authentication requirement for a route or
// controller. Providers form an OR condition: any one succeeding allows
// access. Scopes, when set, must all be granted by the succeeding provider.
type AuthRule struct {
	Providers []string
	Scopes    []string
}

// AuthProvider authenticates a request and returns an opaque principal,
// plus the scopes granted to it.
type AuthProvider interface {
	Name() string
	Authenticate(r *http.Request) (principal any, scopes []string, err error)
}

// RouteInfo provides route information for inspection after mounting.
type RouteInfo struct {
	Name        string
	Method      string
	Path        string
	Controller  string
	Summary     string
	Description string
	Tags        []string
	Schema      any
	Responses   map[int]ResponseDef
	Deprecated  bool
	Protected   bool
}
