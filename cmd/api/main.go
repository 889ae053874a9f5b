package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/medme/outbound-voice-messaging/internal/api/router"
	"github.com/medme/outbound-voice-messaging/internal/appointments"
	appconfig "github.com/medme/outbound-voice-messaging/internal/config"
	"github.com/medme/outbound-voice-messaging/internal/http/handlers"
	"github.com/medme/outbound-voice-messaging/internal/observability/metrics"
	"github.com/medme/outbound-voice-messaging/internal/reminder"
	"github.com/medme/outbound-voice-messaging/internal/vapi"
	"github.com/medme/outbound-voice-messaging/pkg/logging"
)

func main() {
	// Load .env if present; deployment environments set real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting outbound-voice-messaging API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Warm the data file so first requests never race on creation.
	store := appointments.NewFileStore(cfg.DataPath)
	if err := store.Init(); err != nil {
		logger.Error("failed to initialize data store", "path", cfg.DataPath, "error", err)
		os.Exit(1)
	}

	service := appointments.NewService(store, logger)
	reminderMetrics := metrics.NewReminderMetrics(nil)

	// The server runs without Vapi credentials; dispatch enforces them per
	// request so appointment CRUD stays usable.
	var vapiClient reminder.CallPlacer
	if cfg.VapiAPIKey != "" {
		client, err := vapi.New(vapi.Config{
			APIKey:  cfg.VapiAPIKey,
			BaseURL: cfg.VapiBaseURL,
			Logger:  logger,
		})
		if err != nil {
			logger.Error("failed to build vapi client", "error", err)
			os.Exit(1)
		}
		vapiClient = client
	}
	if !cfg.VapiConfigured() {
		logger.Warn("VAPI_API_KEY, VAPI_ASSISTANT_ID, and/or VAPI_PHONE_NUMBER are not set; reminder calls will fail until they are configured")
	}

	dispatcher := reminder.NewDispatcher(reminder.Config{
		Service:     service,
		Client:      vapiClient,
		AssistantID: cfg.VapiAssistantID,
		FromNumber:  cfg.VapiPhoneNumber,
		Metrics:     reminderMetrics,
		Logger:      logger,
	})

	r := router.New(&router.Config{
		Logger:              logger,
		AppointmentsHandler: handlers.NewAppointmentsHandler(service, logger),
		ReminderHandler:     handlers.NewReminderHandler(dispatcher, logger),
		VapiWebhookHandler:  handlers.NewVapiWebhookHandler(service, reminderMetrics, logger),
		MetricsHandler:      promhttp.Handler(),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
		PublicDir:           cfg.PublicDir,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
