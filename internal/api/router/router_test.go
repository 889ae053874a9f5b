package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/internal/http/handlers"
	"github.com/medme/outbound-voice-messaging/internal/reminder"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.Default()
	store := appointments.NewFileStore(filepath.Join(t.TempDir(), "data.json"))
	service := appointments.NewService(store, logger)
	dispatcher := reminder.NewDispatcher(reminder.Config{Service: service, Logger: logger})

	cfg := &Config{
		Logger:              logger,
		AppointmentsHandler: handlers.NewAppointmentsHandler(service, logger),
		ReminderHandler:     handlers.NewReminderHandler(dispatcher, logger),
		VapiWebhookHandler:  handlers.NewVapiWebhookHandler(service, nil, logger),
		CORSAllowedOrigins:  []string{"*"},
	}

	return New(cfg)
}

func TestRouterHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var resp map[string]string
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode health response: %v", err)
	}
	if resp["status"] != "ok" {
		t.Errorf("expected status 'ok', got %q", resp["status"])
	}
}

func TestRouterAppointmentRoutes(t *testing.T) {
	router := newTestRouter(t)

	body, _ := json.Marshal(appointments.CreateAppointmentRequest{
		FirstName:           "Jane",
		LastName:            "Doe",
		PhoneNumber:         "15551234567",
		AppointmentDateTime: "2025-03-10T14:30:00",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/appointments", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d: %s", http.StatusCreated, rr.Code, rr.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/appointments", nil)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	var list []appointments.Appointment
	if err := json.NewDecoder(rr.Body).Decode(&list); err != nil {
		t.Fatalf("failed to decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected one appointment, got %d", len(list))
	}
}

func TestRouterWebhookRoute(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/vapi-webhook", bytes.NewReader([]byte(`{"metadata":{}}`)))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}

func TestRouterSendReminderUnknownPatient(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/send-reminder/nope", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, rr.Code)
	}
}
