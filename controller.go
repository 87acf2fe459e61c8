package strut

import (
	"github.com/xraph/strut/internal/router"
)

// Controller declares a route prefix and the routes mounted under it.
type Controller = router.Controller

// Optional controller capabilities.
type (
	ControllerWithName       = router.ControllerWithName
	ControllerWithMiddleware = router.ControllerWithMiddleware
	ControllerWithAuth       = router.ControllerWithAuth
)

// Route is the declarative route descriptor.
type Route = router.Route

// Middleware wraps an http.Handler.
type Middleware = router.Middleware

// ResponseDef documents a response status for the OpenAPI document.
type ResponseDef = router.ResponseDef

// AuthRule names the providers and scopes a route requires.
type AuthRule = router.AuthRule

// AuthProvider authenticates requests for routes carrying an AuthRule.
type AuthProvider = router.AuthProvider

// RouteInfo is the mounted-route metadata exposed by Server.Routes.
type RouteInfo = router.RouteInfo

var (
	// WriteJSON renders v as a JSON response with the given status.
	WriteJSON = router.WriteJSON

	// WriteError renders an error as a JSON response, deriving the status
	// from the error chain.
	WriteError = router.WriteError

	// ValidatedBody returns the decoded request body installed by schema
	// validation, or nil.
	ValidatedBody = router.ValidatedBody

	// Principal returns the authenticated principal, or nil.
	Principal = router.Principal
)
