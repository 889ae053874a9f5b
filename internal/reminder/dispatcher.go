package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medme/outbound-voice-messaging/internal/appointments"
	"github.com/medme/outbound-voice-messaging/internal/observability/metrics"
	"github.com/medme/outbound-voice-messaging/internal/vapi"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// ErrNotConfigured is returned when the Vapi credentials (API key, assistant
// id, source number) are not all present. This is a hard precondition for
// dispatching, not a retryable upstream condition.
var ErrNotConfigured = errors.New("vapi credentials are not configured")

// UpstreamError wraps a failure from the Vapi API so handlers can surface the
// upstream detail alongside a stable error message.
type UpstreamError struct {
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to initiate call via Vapi API: %v", e.Err)
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// CallPlacer places outbound phone calls. Satisfied by *vapi.Client.
type CallPlacer interface {
	CreatePhoneCall(ctx context.Context, req vapi.PhoneCallRequest) (*vapi.PhoneCallResponse, error)
}

// Dispatcher resolves an appointment record and requests an outbound
// reminder call from the Vapi API. reminderSent is flipped only after the
// call is successfully placed, so a failed dispatch stays retryable.
type Dispatcher struct {
	service     *appointments.Service
	client      CallPlacer
	assistantID string
	fromNumber  string
	metrics     *metrics.ReminderMetrics
	logger      *logging.Logger
}

// Config configures the reminder dispatcher. Client may be nil when the Vapi
// API key is absent; dispatching then fails with ErrNotConfigured.
type Config struct {
	Service     *appointments.Service
	Client      CallPlacer
	AssistantID string
	FromNumber  string
	Metrics     *metrics.ReminderMetrics
	Logger      *logging.Logger
}

// NewDispatcher creates a reminder dispatcher.
func NewDispatcher(cfg Config) *Dispatcher {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		service:     cfg.Service,
		client:      cfg.Client,
		assistantID: cfg.AssistantID,
		fromNumber:  cfg.FromNumber,
		metrics:     cfg.Metrics,
		logger:      logger,
	}
}

// Result reports a successfully dispatched reminder call.
type Result struct {
	PatientID string
	CallID    string
}

// Dispatch places a reminder call for the given patient id.
func (d *Dispatcher) Dispatch(ctx context.Context, patientID string) (*Result, error) {
	appt, err := d.service.FindByID(patientID)
	if err != nil {
		if errors.Is(err, appointments.ErrNotFound) {
			d.metrics.ObserveDispatch("not_found")
		}
		return nil, err
	}

	if d.client == nil || d.assistantID == "" || d.fromNumber == "" {
		d.metrics.ObserveDispatch("not_configured")
		return nil, ErrNotConfigured
	}

	d.logger.Info("initiating reminder call",
		"patient_id", appt.ID,
		"patient_name", appt.FullName(),
	)

	start := time.Now()
	resp, err := d.client.CreatePhoneCall(ctx, vapi.PhoneCallRequest{
		AssistantID: d.assistantID,
		To:          NormalizePhone(appt.PhoneNumber),
		From:        NormalizePhone(d.fromNumber),
		Metadata:    vapi.CallMetadata{PatientID: appt.ID},
	})
	if err != nil {
		d.metrics.ObserveVapiCall("error", time.Since(start).Seconds())
		d.metrics.ObserveDispatch("upstream_error")
		// No state mutation on failure; the record stays eligible for retry.
		return nil, &UpstreamError{Err: err}
	}
	d.metrics.ObserveVapiCall("success", time.Since(start).Seconds())

	if err := d.service.MarkReminderSent(appt.ID); err != nil {
		d.metrics.ObserveDispatch("persistence_error")
		return nil, fmt.Errorf("mark reminder sent: %w", err)
	}

	d.metrics.ObserveDispatch("success")
	d.logger.Info("reminder call dispatched", "patient_id", appt.ID, "call_id", resp.ID)
	return &Result{PatientID: appt.ID, CallID: resp.ID}, nil
}
