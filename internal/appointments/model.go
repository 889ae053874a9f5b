package appointments

import "strings"

// Appointment represents a patient's scheduled visit plus reminder-call state.
// JSON field names match the wire and on-disk format expected by the booking
// form and the voice assistant.
type Appointment struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	// PhoneNumber is stored exactly as given; it is normalized to E.164
	// only when a call is dispatched.
	PhoneNumber string `json:"phoneNumber"`
	// AppointmentDateTime is an ISO-8601 timestamp, kept as the client sent
	// it (no timezone normalization).
	AppointmentDateTime string `json:"appointmentDateTime"`
	ReminderSent        bool   `json:"reminderSent"`
	CreatedAt           string `json:"createdAt"`
}

// FullName joins first and last name for display and speech.
func (a *Appointment) FullName() string {
	return a.FirstName + " " + a.LastName
}

// CreateAppointmentRequest represents the request body for registering an
// appointment
type CreateAppointmentRequest struct {
	FirstName           string `json:"firstName"`
	LastName            string `json:"lastName"`
	PhoneNumber         string `json:"phoneNumber"`
	AppointmentDateTime string `json:"appointmentDateTime"`
}

// Validate checks that all required fields are present
func (r *CreateAppointmentRequest) Validate() error {
	if strings.TrimSpace(r.FirstName) == "" ||
		strings.TrimSpace(r.LastName) == "" ||
		strings.TrimSpace(r.PhoneNumber) == "" ||
		strings.TrimSpace(r.AppointmentDateTime) == "" {
		return ErrMissingFields
	}
	return nil
}
