package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/internal/observability/metrics"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// VapiWebhookEvent is the context-request payload the Vapi assistant sends
// mid-call. The patient id rides in the call metadata attached at dispatch
// time; legacy payloads carried it at the top level and are still accepted.
type VapiWebhookEvent struct {
	Metadata VapiWebhookMetadata `json:"metadata"`
	// PatientID is the legacy top-level field.
	PatientID string `json:"patientId,omitempty"`
}

// VapiWebhookMetadata echoes the metadata attached to the outbound call.
type VapiWebhookMetadata struct {
	PatientID string `json:"patientId"`
}

// VapiContextResponse is the JSON body the assistant's TTS engine reads from.
// PatientName and FullName carry the same value; both keys are kept for
// backward compatibility with the assistant's expected schema.
type VapiContextResponse struct {
	PatientName     string `json:"patientName"`
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	FullName        string `json:"fullName"`
}

// VapiWebhookHandler answers the voice assistant's mid-call context requests
type VapiWebhookHandler struct {
	service *appointments.Service
	metrics *metrics.ReminderMetrics
	logger  *logging.Logger
}

// NewVapiWebhookHandler creates a new webhook handler
func NewVapiWebhookHandler(service *appointments.Service, m *metrics.ReminderMetrics, logger *logging.Logger) *VapiWebhookHandler {
	return &VapiWebhookHandler{
		service: service,
		metrics: m,
		logger:  logger,
	}
}

// HandleWebhook handles POST /api/vapi-webhook requests
func (h *VapiWebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	var event VapiWebhookEvent
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		h.logger.Error("failed to decode vapi webhook", "error", err)
		h.metrics.ObserveWebhook("bad_request")
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	patientID := event.Metadata.PatientID
	if patientID == "" {
		patientID = event.PatientID
	}
	if patientID == "" {
		h.metrics.ObserveWebhook("missing_patient_id")
		writeError(w, h.logger, http.StatusBadRequest, "Patient ID is required in metadata")
		return
	}

	appt, err := h.service.FindByID(patientID)
	if err != nil {
		if errors.Is(err, appointments.ErrNotFound) {
			h.metrics.ObserveWebhook("not_found")
			writeError(w, h.logger, http.StatusNotFound, "Patient not found")
			return
		}
		h.logger.Error("failed to process vapi webhook", "patient_id", patientID, "error", err)
		h.metrics.ObserveWebhook("error")
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to process webhook")
		return
	}

	date, clock, err := formatSpeakable(appt.AppointmentDateTime)
	if err != nil {
		h.logger.Error("stored appointment timestamp is unparseable",
			"patient_id", appt.ID,
			"appointment_at", appt.AppointmentDateTime,
			"error", err,
		)
		h.metrics.ObserveWebhook("error")
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to process webhook")
		return
	}

	h.logger.Info("resolved webhook context", "patient_id", appt.ID)
	h.metrics.ObserveWebhook("success")

	// The assistant is mid-call with the patient: the context response takes
	// priority over the reminderSent bookkeeping, so it is sent first and a
	// persistence failure afterwards only gets logged.
	writeJSON(w, h.logger, http.StatusOK, VapiContextResponse{
		PatientName:     appt.FullName(),
		AppointmentDate: date,
		AppointmentTime: clock,
		FullName:        appt.FullName(),
	})

	if err := h.service.MarkReminderSent(appt.ID); err != nil {
		h.logger.Error("failed to mark reminder sent after webhook", "patient_id", appt.ID, "error", err)
		h.metrics.ObserveWebhook("persistence_error")
	}
}

// appointmentTimeLayouts are tried in order when parsing stored timestamps.
// Records created through the booking form carry no zone designator.
var appointmentTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// formatSpeakable renders a stored ISO-8601 timestamp as the long-form en-US
// date ("Monday, March 10, 2025") and zero-padded 12-hour time ("02:30 PM")
// the voice assistant reads aloud. The exact strings are a presentation
// contract with the assistant.
func formatSpeakable(value string) (date string, clock string, err error) {
	var ts time.Time
	for _, layout := range appointmentTimeLayouts {
		if ts, err = time.Parse(layout, value); err == nil {
			return ts.Format("Monday, January 2, 2006"), ts.Format("03:04 PM"), nil
		}
	}
	return "", "", fmt.Errorf("parse appointment time %q: %w", value, err)
}
