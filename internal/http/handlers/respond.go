package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// errorResponse is the JSON error body returned by every endpoint. Details is
// populated only for upstream failures.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, logger *logging.Logger, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to write JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, logger *logging.Logger, status int, message string) {
	writeJSON(w, logger, status, errorResponse{Error: message})
}
