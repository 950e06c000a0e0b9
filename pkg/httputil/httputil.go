// Package httputil centralizes JSON response writing so every handler emits
// the same envelopes.
package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "listly/pkg/domain-errors"
)

// errorResponse is the JSON error envelope returned by every endpoint.
// error_description is omitted for internal errors so storage details never
// leak to clients.
type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteJSON writes v as a JSON body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates a domain error into its HTTP envelope. Uncoded errors
// are treated as internal.
func WriteError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	resp := errorResponse{
		Error:            string(code),
		ErrorDescription: dErrors.MessageOf(err),
	}
	if code == dErrors.CodeInternal {
		resp.Error = "internal_error"
	}
	WriteJSON(w, dErrors.ToHTTPStatus(code), resp)
}

// DecodeJSON decodes a request body into dst, rejecting unknown garbage with
// a validation error.
func DecodeJSON(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		if errors.Is(err, http.ErrBodyReadAfterClose) {
			return dErrors.Wrap(err, dErrors.CodeInternal, "request body closed")
		}
		return dErrors.New(dErrors.CodeValidation, "invalid request body")
	}
	return nil
}
