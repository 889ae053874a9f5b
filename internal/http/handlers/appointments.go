package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// AppointmentsHandler handles HTTP requests for appointment records
type AppointmentsHandler struct {
	service *appointments.Service
	logger  *logging.Logger
}

// NewAppointmentsHandler creates a new appointments handler
func NewAppointmentsHandler(service *appointments.Service, logger *logging.Logger) *AppointmentsHandler {
	return &AppointmentsHandler{
		service: service,
		logger:  logger,
	}
}

// createResponse is the body returned after registering an appointment.
type createResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// Create handles POST /api/appointments requests
func (h *AppointmentsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req appointments.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode appointment request", "error", err)
		writeError(w, h.logger, http.StatusBadRequest, "Invalid request body")
		return
	}

	appt, err := h.service.Create(req)
	if err != nil {
		if errors.Is(err, appointments.ErrMissingFields) {
			writeError(w, h.logger, http.StatusBadRequest, "All fields are required")
			return
		}
		h.logger.Error("failed to add appointment", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to add appointment")
		return
	}

	writeJSON(w, h.logger, http.StatusCreated, createResponse{
		Message: "Appointment added successfully",
		ID:      appt.ID,
	})
}

// List handles GET /api/appointments requests
func (h *AppointmentsHandler) List(w http.ResponseWriter, r *http.Request) {
	appts, err := h.service.List()
	if err != nil {
		h.logger.Error("failed to fetch appointments", "error", err)
		writeError(w, h.logger, http.StatusInternalServerError, "Failed to fetch appointments")
		return
	}
	writeJSON(w, h.logger, http.StatusOK, appts)
}
