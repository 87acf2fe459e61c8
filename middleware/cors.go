package middleware

import (
	"net/http"
	"strconv"
	"strings"
)

// CORSConfig configures Cross-Origin Resource Sharing.
type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

// DefaultCORSConfig returns default CORS configuration
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		ExposedHeaders:   []string{},
		AllowCredentials: false,
		MaxAge:           86400, // 24 hours
	}
}

// CORS returns middleware handling Cross-Origin Resource Sharing, including
// preflight requests.
func CORS(config CORSConfig) func(http.Handler) http.Handler {
	c := &corsHandler{config: config}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if !c.isOriginAllowed(origin) {
				if r.Method == http.MethodOptions {
					w.WriteHeader(http.StatusForbidden)
					return
				}
				next.ServeHTTP(w, r)
				return
			}

			c.setCORSHeaders(w, origin)

			if r.Method == http.MethodOptions {
				c.handlePreflight(w, r)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type corsHandler struct {
	config CORSConfig
}

// isOriginAllowed checks if the origin is allowed. Requests without an
// Origin header are same-origin and always pass.
func (c *corsHandler) isOriginAllowed(origin string) bool {
	if origin == "" {
		return true
	}
	for _, allowed := range c.config.AllowedOrigins {
		if allowed == "*" {
			return true
		}
		if c.matchOrigin(origin, allowed) {
			return true
		}
	}
	return false
}

// matchOrigin checks if origin matches the allowed origin pattern,
// including wildcard subdomains (e.g. *.example.com).
func (c *corsHandler) matchOrigin(origin, allowed string) bool {
	if origin == allowed {
		return true
	}
	if strings.HasPrefix(allowed, "*.") {
		domain := allowed[2:]
		return strings.HasSuffix(origin, domain) || origin == domain
	}
	return false
}

func (c *corsHandler) setCORSHeaders(w http.ResponseWriter, origin string) {
	if origin != "" {
		if c.hasWildcardOrigin() && !c.config.AllowCredentials {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		} else {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		}
	}

	if c.config.AllowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}

	if len(c.config.ExposedHeaders) > 0 {
		w.Header().Set("Access-Control-Expose-Headers", strings.Join(c.config.ExposedHeaders, ", "))
	}

	vary := w.Header().Get("Vary")
	if vary == "" {
		w.Header().Set("Vary", "Origin")
	} else if !strings.Contains(vary, "Origin") {
		w.Header().Set("Vary", vary+", Origin")
	}
}

func (c *corsHandler) handlePreflight(w http.ResponseWriter, r *http.Request) {
	requestMethod := r.Header.Get("Access-Control-Request-Method")
	if requestMethod != "" && !c.isMethodAllowed(requestMethod) {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	requestHeaders := r.Header.Get("Access-Control-Request-Headers")
	if requestHeaders != "" && !c.areHeadersAllowed(requestHeaders) {
		w.WriteHeader(http.StatusForbidden)
		return
	}

	if len(c.config.AllowedMethods) > 0 {
		w.Header().Set("Access-Control-Allow-Methods", strings.Join(c.config.AllowedMethods, ", "))
	}

	if len(c.config.AllowedHeaders) > 0 {
		if c.hasWildcardHeaders() {
			// Echo the requested headers when the wildcard is allowed.
			if requestHeaders != "" {
				w.Header().Set("Access-Control-Allow-Headers", requestHeaders)
			}
		} else {
			w.Header().Set("Access-Control-Allow-Headers", strings.Join(c.config.AllowedHeaders, ", "))
		}
	}

	if c.config.MaxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(c.config.MaxAge))
	}

	w.WriteHeader(http.StatusNoContent)
}

func (c *corsHandler) isMethodAllowed(method string) bool {
	for _, allowed := range c.config.AllowedMethods {
		if allowed == "*" || strings.EqualFold(allowed, method) {
			return true
		}
	}
	return false
}

func (c *corsHandler) areHeadersAllowed(requestHeaders string) bool {
	if c.hasWildcardHeaders() {
		return true
	}
	for _, header := range strings.Split(requestHeaders, ",") {
		header = strings.TrimSpace(header)
		if !c.isHeaderAllowed(header) {
			return false
		}
	}
	return true
}

func (c *corsHandler) isHeaderAllowed(header string) bool {
	for _, allowed := range c.config.AllowedHeaders {
		if strings.EqualFold(allowed, header) {
			return true
		}
	}
	return false
}

func (c *corsHandler) hasWildcardOrigin() bool {
	for _, origin := range c.config.AllowedOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *corsHandler) hasWildcardHeaders() bool {
	for _, header := range c.config.AllowedHeaders {
		if header == "*" {
			return true
		}
	}
	return false
}
