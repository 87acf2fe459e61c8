package openapi

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// UIConfig configures the Swagger UI routes.
type UIConfig struct {
	Enabled     bool
	RoutePrefix string
	UIConfig    map[string]any
}

// DefaultUIConfig serves the UI at /docs when enabled.
func DefaultUIConfig() UIConfig {
	return UIConfig{
		Enabled:     false,
		RoutePrefix: "/docs",
	}
}

// SpecHandler serves the generated document as JSON.
func SpecHandler(doc *Document) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// UIHandler serves the Swagger UI page pointed at the given spec URL.
func UIHandler(title, specURL string, uiConfig map[string]any) http.HandlerFunc {
	extra := ""
	if len(uiConfig) > 0 {
		if raw, err := json.Marshal(uiConfig); err == nil {
			extra = string(raw)
		}
	}

	html := `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>` + title + ` - API Documentation</title>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@latest/swagger-ui.css" />
    <style>
        body {
            margin: 0;
            padding: 0;
        }
    </style>
</head>
<body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-bundle.js"></script>
    <script src="https://unpkg.com/swagger-ui-dist@latest/swagger-ui-standalone-preset.js"></script>
    <script>
        window.onload = function() {
            var overrides = ` + orDefault(extra, "{}") + `;
            window.ui = SwaggerUIBundle(Object.assign({
                url: "` + specURL + `",
                dom_id: '#swagger-ui',
                deepLinking: true,
                presets: [
                    SwaggerUIBundle.presets.apis,
                    SwaggerUIStandalonePreset
                ],
                layout: "StandaloneLayout",
                displayRequestDuration: true,
                tryItOutEnabled: true
            }, overrides));
        };
    </script>
</body>
</html>`

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(html))
	}
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
