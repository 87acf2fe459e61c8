package router

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	serrors "github.com/xraph/strut/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// WriteJSON renders v as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError renders an error as a JSON response, mapping it to an HTTP
// status code through the errors package.
func WriteError(w http.ResponseWriter, err error) {
	status := serrors.GetHTTPStatusCode(err)

	message := http.StatusText(status)
	var httpErr *serrors.HTTPError
	if serrors.As(err, &httpErr) && httpErr.Message != "" {
		message = httpErr.Message
	}

	WriteJSON(w, status, map[string]any{
		"status":  status,
		"message": message,
	})
}
