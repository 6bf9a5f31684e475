package chi

import (
	"encoding/json"
	"net/http"
)

// errorResponse is the error envelope shared by every route.
type errorResponse struct {
	Message string   `json:"message"`
	Details string   `json:"details,omitempty"`
	Missing []string `json:"missing,omitempty"`
}

// messageResponse acknowledges a webhook.
type messageResponse struct {
	Message string `json:"message"`
}

// writeJSON encodes v as JSON and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Message: msg})
}
