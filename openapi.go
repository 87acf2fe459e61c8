package strut

import (
	"github.com/xraph/strut/internal/openapi"
)

// OpenAPIConfig configures document generation for WithSwagger.
type OpenAPIConfig = openapi.Config

// OpenAPIInfo is the document's info block.
type OpenAPIInfo = openapi.Info

// SwaggerUIConfig configures the Swagger UI routes for WithSwaggerUI.
type SwaggerUIConfig = openapi.UIConfig

var (
	// DefaultOpenAPIConfig returns a disabled configuration with
	// placeholder info.
	DefaultOpenAPIConfig = openapi.DefaultConfig

	// DefaultSwaggerUIConfig serves the UI at /docs when enabled.
	DefaultSwaggerUIConfig = openapi.DefaultUIConfig
)
