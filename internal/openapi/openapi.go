// Package openapi generates an OpenAPI 3.0 document from mounted route
// metadata and serves it alongside a Swagger UI page.
package openapi

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/xraph/strut/internal/router"
)

// Config configures document generation.
type Config struct {
	Enabled    bool
	Info       Info
	Servers    []Server
	Security   []map[string][]string
	Components *Components
}

// DefaultConfig returns a disabled configuration with placeholder info.
func DefaultConfig() Config {
	return Config{
		Enabled: false,
		Info:    Info{Title: "API", Version: "0.1.0"},
	}
}

// Info provides metadata about the API.
type Info struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Version     string `json:"version"`
}

// Server represents a server in the OpenAPI spec.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Components holds reusable objects for the spec.
type Components struct {
	Schemas         map[string]*Schema `json:"schemas,omitempty"`
	SecuritySchemes map[string]any     `json:"securitySchemes,omitempty"`
}

// Document represents the generated OpenAPI document.
type Document struct {
	OpenAPI    string                           `json:"openapi"`
	Info       Info                             `json:"info"`
	Servers    []Server                         `json:"servers,omitempty"`
	Paths      map[string]map[string]*Operation `json:"paths"`
	Components *Components                      `json:"components,omitempty"`
	Security   []map[string][]string            `json:"security,omitempty"`
}

// Operation describes a single API operation on a path.
type Operation struct {
	OperationID string               `json:"operationId,omitempty"`
	Summary     string               `json:"summary,omitempty"`
	Description string               `json:"description,omitempty"`
	Tags        []string             `json:"tags,omitempty"`
	Deprecated  bool                 `json:"deprecated,omitempty"`
	RequestBody *RequestBody         `json:"requestBody,omitempty"`
	Responses   map[string]*Response `json:"responses"`
}

// RequestBody describes a request body.
type RequestBody struct {
	Required bool                 `json:"required"`
	Content  map[string]MediaType `json:"content"`
}

// Response describes a single response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// MediaType provides the schema for a media type.
type MediaType struct {
	Schema *Schema `json:"schema,omitempty"`
}

// Schema is a JSON Schema subset sufficient for declarative route schemas.
type Schema struct {
	Type       string             `json:"type,omitempty"`
	Format     string             `json:"format,omitempty"`
	Properties map[string]*Schema `json:"properties,omitempty"`
	Items      *Schema            `json:"items,omitempty"`
	Required   []string           `json:"required,omitempty"`
	Additional *Schema            `json:"additionalProperties,omitempty"`
}

// Generate builds the document from the mounted routes.
func Generate(config Config, routes []router.RouteInfo) *Document {
	doc := &Document{
		OpenAPI:    "3.0.3",
		Info:       config.Info,
		Servers:    config.Servers,
		Paths:      make(map[string]map[string]*Operation),
		Components: config.Components,
		Security:   config.Security,
	}

	for _, rt := range routes {
		ops, ok := doc.Paths[rt.Path]
		if !ok {
			ops = make(map[string]*Operation)
			doc.Paths[rt.Path] = ops
		}

		op := &Operation{
			OperationID: operationID(rt),
			Summary:     rt.Summary,
			Description: rt.Description,
			Tags:        rt.Tags,
			Deprecated:  rt.Deprecated,
			Responses:   make(map[string]*Response),
		}

		if rt.Schema != nil {
			op.RequestBody = &RequestBody{
				Required: true,
				Content: map[string]MediaType{
					"application/json": {Schema: SchemaOf(rt.Schema)},
				},
			}
		}

		for status, def := range rt.Responses {
			resp := &Response{Description: def.Description}
			if def.Schema != nil {
				resp.Content = map[string]MediaType{
					"application/json": {Schema: SchemaOf(def.Schema)},
				}
			}
			op.Responses[fmt.Sprintf("%d", status)] = resp
		}
		if len(op.Responses) == 0 {
			op.Responses["200"] = &Response{Description: "OK"}
		}

		ops[strings.ToLower(rt.Method)] = op
	}

	return doc
}

func operationID(rt router.RouteInfo) string {
	if rt.Name == "" {
		return ""
	}
	id := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '/', '{', '}':
			return '_'
		}
		return r
	}, rt.Name)
	return strings.Trim(id, "_")
}

// SchemaOf derives a schema from a Go value via reflection on json tags.
func SchemaOf(v any) *Schema {
	return schemaOfType(reflect.TypeOf(v))
}

var timeType = reflect.TypeOf(time.Time{})

func schemaOfType(t reflect.Type) *Schema {
	if t == nil {
		return &Schema{}
	}
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == timeType {
		return &Schema{Type: "string", Format: "date-time"}
	}

	switch t.Kind() {
	case reflect.Bool:
		return &Schema{Type: "boolean"}
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return &Schema{Type: "integer"}
	case reflect.Float32, reflect.Float64:
		return &Schema{Type: "number"}
	case reflect.String:
		return &Schema{Type: "string"}
	case reflect.Slice, reflect.Array:
		return &Schema{Type: "array", Items: schemaOfType(t.Elem())}
	case reflect.Map:
		return &Schema{Type: "object", Additional: schemaOfType(t.Elem())}
	case reflect.Struct:
		return schemaOfStruct(t)
	default:
		return &Schema{}
	}
}

func schemaOfStruct(t reflect.Type) *Schema {
	s := &Schema{Type: "object", Properties: make(map[string]*Schema)}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.IsExported() {
			continue
		}

		name := field.Name
		if tag, ok := field.Tag.Lookup("json"); ok {
			parts := strings.Split(tag, ",")
			if parts[0] == "-" {
				continue
			}
			if parts[0] != "" {
				name = parts[0]
			}
		}

		s.Properties[name] = schemaOfType(field.Type)

		if validate := field.Tag.Get("validate"); strings.Contains(validate, "required") {
			s.Required = append(s.Required, name)
		}
	}

	return s
}
