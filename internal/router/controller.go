package router

// Controller organizes related routes behind a shared path prefix.
type Controller interface {
	// Prefix returns the path prefix for all of the controller's routes.
	// An empty prefix mounts the routes at the root.
	Prefix() string

	// Routes returns the controller's route descriptors.
	Routes() []Route
}

// ControllerWithName overrides the identifier used in logs and route names.
// Without it, the binding token identifies the controller.
type ControllerWithName interface {
	Controller
	Name() string
}

// ControllerWithMiddleware applies middleware to all of the controller's
// routes, outermost.
type ControllerWithMiddleware interface {
	Controller
	Middleware() []Middleware
}

// ControllerWithAuth sets a default authentication requirement for all of
// the controller's routes. Per-route rules take precedence.
type ControllerWithAuth interface {
	Controller
	Auth() *AuthRule
}
