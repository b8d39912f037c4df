// Package handlers provides shared JSON response helpers so every
// HTTP handler in the service shapes its output the same way.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// RespondJSON encodes data as the response body with the given status.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the failure and answers with {"error": "<message>"}.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	logger.Error("handler error", "error", err, "status", status)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
