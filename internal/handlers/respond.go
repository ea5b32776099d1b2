// Package handlers maps the REST/JSON API onto the service layer.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"divvy/internal/service"
)

// errorBody is the JSON shape of every non-2xx response.
type errorBody struct {
	Message string `json:"message"`
}

// writeJSON writes v as a JSON response with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// writeError writes a {message} error response with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorBody{Message: message})
}

// writeServiceError maps a service failure to an HTTP status. Internal
// causes are logged and replaced with a generic message.
func writeServiceError(w http.ResponseWriter, err error) {
	var svcErr *service.Error
	if !errors.As(err, &svcErr) {
		slog.Error("Unclassified error", "error", err)
		writeError(w, http.StatusInternalServerError, "Server error")
		return
	}

	switch svcErr.Kind {
	case service.KindValidation:
		writeError(w, http.StatusBadRequest, svcErr.Message)
	case service.KindNotFound:
		writeError(w, http.StatusNotFound, svcErr.Message)
	case service.KindUnauthorized:
		writeError(w, http.StatusUnauthorized, svcErr.Message)
	case service.KindConflict:
		writeError(w, http.StatusConflict, svcErr.Message)
	default:
		slog.Error("Internal error", "error", svcErr.Err)
		writeError(w, http.StatusInternalServerError, "Server error")
	}
}

// decodeJSON decodes the request body into v. Unknown fields are ignored;
// malformed JSON is reported as a generic invalid-body error.
func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid request body")
	}
	return nil
}
