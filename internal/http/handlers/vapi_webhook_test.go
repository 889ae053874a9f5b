package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

func newWebhookHandler(t *testing.T) (*appointments.Service, *VapiWebhookHandler) {
	t.Helper()
	store := appointments.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	service := appointments.NewService(store, logging.Default())
	return service, NewVapiWebhookHandler(service, nil, logging.Default())
}

func postWebhook(t *testing.T, handler *VapiWebhookHandler, payload any) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/vapi-webhook", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler.HandleWebhook(w, req)
	return w
}

func TestWebhookResolvesContext(t *testing.T) {
	service, handler := newWebhookHandler(t)
	appt, err := service.Create(appointments.CreateAppointmentRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		PhoneNumber:         "15551234567",
		AppointmentDateTime: "2025-03-10T14:30:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := postWebhook(t, handler, map[string]any{
		"metadata": map[string]string{"patientId": appt.ID},
	})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}

	var resp VapiContextResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.PatientName != "Jane Doe" {
		t.Errorf("expected patientName Jane Doe, got %q", resp.PatientName)
	}
	if resp.FullName != resp.PatientName {
		t.Errorf("fullName must duplicate patientName, got %q / %q", resp.FullName, resp.PatientName)
	}
	// March 10, 2025 is a Monday; time rendering is zero-padded 12-hour.
	if resp.AppointmentDate != "Monday, March 10, 2025" {
		t.Errorf("unexpected appointmentDate %q", resp.AppointmentDate)
	}
	if resp.AppointmentTime != "02:30 PM" {
		t.Errorf("unexpected appointmentTime %q", resp.AppointmentTime)
	}

	got, err := service.FindByID(appt.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if !got.ReminderSent {
		t.Errorf("expected webhook to mark reminder sent")
	}
}

func TestWebhookAcceptsLegacyTopLevelPatientID(t *testing.T) {
	service, handler := newWebhookHandler(t)
	appt, err := service.Create(appointments.CreateAppointmentRequest{
		FirstName:           "John",
		LastName:            "Smith",
		PhoneNumber:         "15557654321",
		AppointmentDateTime: "2025-04-02T09:15:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := postWebhook(t, handler, map[string]string{"patientId": appt.ID})

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}
	var resp VapiContextResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.AppointmentTime != "09:15 AM" {
		t.Errorf("unexpected appointmentTime %q", resp.AppointmentTime)
	}
}

func TestWebhookMissingPatientID(t *testing.T) {
	service, handler := newWebhookHandler(t)
	appt, err := service.Create(appointments.CreateAppointmentRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		PhoneNumber:         "15551234567",
		AppointmentDateTime: "2025-03-10T14:30:00",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	w := postWebhook(t, handler, map[string]any{"metadata": map[string]string{}})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
	}
	var resp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "Patient ID is required in metadata" {
		t.Errorf("unexpected error %q", resp.Error)
	}

	got, err := service.FindByID(appt.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if got.ReminderSent {
		t.Errorf("validation failure must not mutate state")
	}
}

func TestWebhookUnknownPatient(t *testing.T) {
	_, handler := newWebhookHandler(t)

	w := postWebhook(t, handler, map[string]any{
		"metadata": map[string]string{"patientId": "does-not-exist"},
	})

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
	}
}

func TestFormatSpeakable(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		wantDate string
		wantTime string
		wantErr  bool
	}{
		{"no zone", "2025-03-10T14:30:00", "Monday, March 10, 2025", "02:30 PM", false},
		{"rfc3339", "2025-03-10T14:30:00Z", "Monday, March 10, 2025", "02:30 PM", false},
		{"minute precision", "2025-12-25T08:05", "Thursday, December 25, 2025", "08:05 AM", false},
		{"morning single digit hour", "2025-03-10T09:00:00", "Monday, March 10, 2025", "09:00 AM", false},
		{"garbage", "next tuesday", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			date, clock, err := formatSpeakable(tt.value)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q", tt.value)
				}
				return
			}
			if err != nil {
				t.Fatalf("format: %v", err)
			}
			if date != tt.wantDate || clock != tt.wantTime {
				t.Fatalf("got (%q, %q), want (%q, %q)", date, clock, tt.wantDate, tt.wantTime)
			}
		})
	}
}
