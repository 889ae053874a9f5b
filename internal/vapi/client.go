package vapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

const (
	defaultBaseURL = "https://api.vapi.ai"
	callTimeout    = 15 * time.Second
)

// Client initiates outbound voice calls via the Vapi calling API.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	logger     *logging.Logger
}

// Config configures the outbound calling client.
type Config struct {
	// APIKey is the Vapi API key (Bearer token).
	APIKey string
	// BaseURL overrides the Vapi API base URL (for testing).
	BaseURL string
	// HTTPClient overrides the default HTTP client.
	HTTPClient *http.Client
	Logger     *logging.Logger
}

// New creates a client for placing outbound reminder calls.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("vapi: API key required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: callTimeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	return &Client{
		apiKey:     cfg.APIKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// CallMetadata rides along with the call so the assistant's mid-call webhook
// can correlate it back to a patient record.
type CallMetadata struct {
	PatientID string `json:"patientId"`
}

// PhoneCallRequest contains the parameters for placing an outbound call.
type PhoneCallRequest struct {
	// AssistantID selects the Vapi assistant that runs the call.
	AssistantID string `json:"assistant_id"`
	// To is the patient's phone number (E.164).
	To string `json:"to"`
	// From is the clinic's Vapi phone number (E.164).
	From string `json:"from"`
	// Metadata is echoed back on webhook requests during the call.
	Metadata CallMetadata `json:"metadata"`
}

// PhoneCallResponse is the Vapi API response for call placement.
type PhoneCallResponse struct {
	ID     string `json:"id"`
	Status string `json:"status,omitempty"`
}

// CreatePhoneCall places an outbound reminder call to the patient.
func (c *Client) CreatePhoneCall(ctx context.Context, req PhoneCallRequest) (*PhoneCallResponse, error) {
	if req.To == "" || req.From == "" {
		return nil, fmt.Errorf("vapi: to and from phone numbers required")
	}
	if req.AssistantID == "" {
		return nil, fmt.Errorf("vapi: assistant ID required")
	}

	url := c.baseURL + "/call/phone"

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("vapi: marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("vapi: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	c.logger.Info("vapi: placing outbound call",
		"from", maskPhone(req.From),
		"to", maskPhone(req.To),
		"assistant_id", req.AssistantID,
	)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("vapi: http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("vapi: read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("vapi: API error",
			"status", resp.StatusCode,
			"body", string(respBody),
		)
		return nil, fmt.Errorf("vapi: API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var callResp PhoneCallResponse
	if err := json.Unmarshal(respBody, &callResp); err != nil {
		return nil, fmt.Errorf("vapi: decode response: %w", err)
	}

	c.logger.Info("vapi: outbound call placed",
		"call_id", callResp.ID,
		"to", maskPhone(req.To),
	)

	return &callResp, nil
}

func maskPhone(phone string) string {
	phone = strings.TrimSpace(phone)
	if len(phone) <= 4 {
		return "****"
	}
	return "***" + phone[len(phone)-4:]
}
