package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/xraph/strut/logger"
)

// Recovery middleware recovers from panics, logs them with a stack trace,
// and returns a 500 response when nothing has been written yet.
func Recovery(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := NewResponseWriter(w)

			defer func() {
				if rec := recover(); rec != nil {
					log.Error("panic recovered",
						logger.Any("panic", rec),
						logger.String("method", r.Method),
						logger.String("path", r.URL.Path),
						logger.String("request_id", GetRequestID(r.Context())),
						logger.String("stack", string(debug.Stack())),
					)

					if !wrapped.Written() {
						http.Error(wrapped, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					}
				}
			}()

			next.ServeHTTP(wrapped, r)
		})
	}
}
