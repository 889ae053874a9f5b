package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/internal/reminder"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// ReminderHandler triggers outbound reminder calls
type ReminderHandler struct {
	dispatcher *reminder.Dispatcher
	logger     *logging.Logger
}

// NewReminderHandler creates a new reminder handler
func NewReminderHandler(dispatcher *reminder.Dispatcher, logger *logging.Logger) *ReminderHandler {
	return &ReminderHandler{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// sendReminderResponse is the body returned after a successful dispatch.
type sendReminderResponse struct {
	Message   string `json:"message"`
	PatientID string `json:"patientId"`
	CallID    string `json:"callId"`
}

// SendReminder handles POST /api/send-reminder/{patientId} requests
func (h *ReminderHandler) SendReminder(w http.ResponseWriter, r *http.Request) {
	patientID := chi.URLParam(r, "patientId")

	result, err := h.dispatcher.Dispatch(r.Context(), patientID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrNotFound):
			writeError(w, h.logger, http.StatusNotFound, "Patient not found")
		case errors.Is(err, reminder.ErrNotConfigured):
			h.logger.Error("reminder dispatch rejected", "patient_id", patientID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Vapi calling is not configured")
		default:
			var ue *reminder.UpstreamError
			if errors.As(err, &ue) {
				h.logger.Error("vapi call failed", "patient_id", patientID, "error", ue.Unwrap())
				writeJSON(w, h.logger, http.StatusInternalServerError, errorResponse{
					Error:   "Failed to initiate call via Vapi API",
					Details: ue.Unwrap().Error(),
				})
				return
			}
			h.logger.Error("failed to send reminder", "patient_id", patientID, "error", err)
			writeError(w, h.logger, http.StatusInternalServerError, "Failed to send reminder")
		}
		return
	}

	writeJSON(w, h.logger, http.StatusOK, sendReminderResponse{
		Message:   "Reminder call initiated successfully",
		PatientID: result.PatientID,
		CallID:    result.CallID,
	})
}
