package common

import (
	"encoding/json"
	"net/http"

	appErrors "catalog-backend/pkg/errors"
)

// ErrorResponse is the client-facing error body: a message plus the
// complete list of violations when input validation failed.
type ErrorResponse struct {
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// RespondJSON writes v as a JSON response with the given status.
func RespondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// RespondError classifies err and writes the matching error response.
// Errors without a classification become opaque internal failures so
// storage details never leak to clients.
func RespondError(w http.ResponseWriter, err error) {
	status := appErrors.HTTPStatusOf(err)
	body := ErrorResponse{Message: "Internal server error"}

	if appErr := appErrors.GetAppError(err); appErr != nil {
		body.Message = appErr.Message
		body.Errors = appErr.Violations
		if appErr.Type == appErrors.ErrorTypeStorage {
			body.Message = "Internal server error"
		}
	}

	RespondJSON(w, status, body)
}

// ParseJSONBody decodes a JSON request body with a size limit, rejecting
// fields outside the allow-listed shape.
func ParseJSONBody(w http.ResponseWriter, r *http.Request, v interface{}, maxBytes int64) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	return decoder.Decode(v)
}
