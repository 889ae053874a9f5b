package router

import (
	"encoding/json"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/medme/outbound-voice-messaging/internal/http/handlers"
	httpmiddleware "github.com/medme/outbound-voice-messaging/internal/http/middleware"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger              *logging.Logger
	AppointmentsHandler *handlers.AppointmentsHandler
	ReminderHandler     *handlers.ReminderHandler
	VapiWebhookHandler  *handlers.VapiWebhookHandler
	MetricsHandler      http.Handler
	CORSAllowedOrigins  []string

	// PublicDir is served at the site root when the directory exists
	// (the staff booking form).
	PublicDir string
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		api.Post("/appointments", cfg.AppointmentsHandler.Create)
		api.Get("/appointments", cfg.AppointmentsHandler.List)
		api.Post("/send-reminder/{patientId}", cfg.ReminderHandler.SendReminder)
		api.Post("/vapi-webhook", cfg.VapiWebhookHandler.HandleWebhook)
	})

	if cfg.PublicDir != "" {
		if info, err := os.Stat(cfg.PublicDir); err == nil && info.IsDir() {
			r.Handle("/*", http.FileServer(http.Dir(cfg.PublicDir)))
		}
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
