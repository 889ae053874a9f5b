package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("VAPI_BASE_URL", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	cfg := Load()
	if cfg.Port != "3000" {
		t.Fatalf("expected default port, got %s", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env, got %s", cfg.Env)
	}
	if cfg.DataPath != "data/data.json" {
		t.Fatalf("expected default data path, got %s", cfg.DataPath)
	}
	if cfg.VapiBaseURL != "https://api.vapi.ai" {
		t.Fatalf("expected default vapi base url, got %s", cfg.VapiBaseURL)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("expected open CORS by default, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.VapiConfigured() {
		t.Fatalf("expected vapi to be unconfigured by default")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("DATA_PATH", "/var/lib/reminders/data.json")
	t.Setenv("VAPI_API_KEY", "key")
	t.Setenv("VAPI_ASSISTANT_ID", "asst_123")
	t.Setenv("VAPI_PHONE_NUMBER", "+15550001111")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	cfg := Load()
	if cfg.Port != "9090" {
		t.Fatalf("expected override port, got %s", cfg.Port)
	}
	if cfg.DataPath != "/var/lib/reminders/data.json" {
		t.Fatalf("expected data path override, got %s", cfg.DataPath)
	}
	if !cfg.VapiConfigured() {
		t.Fatalf("expected vapi to be configured")
	}
	if len(cfg.CORSAllowedOrigins) != 2 || cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Fatalf("expected parsed origins, got %v", cfg.CORSAllowedOrigins)
	}
}
