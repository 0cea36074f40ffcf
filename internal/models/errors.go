package models

import (
	"encoding/json"
	"net/http"
)

// ErrorResponse is the transport-level rejection body. It is distinct
// from the error-typed AskResponse envelope: recoverable pipeline
// failures come back as 200 with type "error", while this shape covers
// requests that never reach the pipeline (malformed bodies, missing API
// keys, rate limits).
type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Code    int    `json:"code,omitempty"`
}

// WriteError writes a transport-level rejection with the given status.
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(ErrorResponse{
		Status:  "error",
		Message: message,
		Code:    code,
	})
}

// WriteJSON writes any response body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
