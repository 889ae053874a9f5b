package config

import (
	"os"
	"strings"
)

// Config holds application configuration
type Config struct {
	Port          string
	Env           string
	LogLevel      string
	PublicBaseURL string

	// DataPath is the JSON file holding the appointment records.
	DataPath string
	// PublicDir is served at the site root when it exists (booking form UI).
	PublicDir string

	// Vapi outbound calling credentials. All three are required before a
	// reminder call can be dispatched; the server itself starts without them.
	VapiAPIKey      string
	VapiAssistantID string
	VapiPhoneNumber string
	VapiBaseURL     string

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "3000"),
		Env:           getEnv("ENV", "development"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		PublicBaseURL: getEnv("SERVER_URL", ""),

		DataPath:  getEnv("DATA_PATH", "data/data.json"),
		PublicDir: getEnv("PUBLIC_DIR", "public"),

		VapiAPIKey:      getEnv("VAPI_API_KEY", ""),
		VapiAssistantID: getEnv("VAPI_ASSISTANT_ID", ""),
		VapiPhoneNumber: getEnv("VAPI_PHONE_NUMBER", ""),
		VapiBaseURL:     getEnv("VAPI_BASE_URL", "https://api.vapi.ai"),

		CORSAllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"*"}),
	}
}

// VapiConfigured reports whether all credentials needed for outbound calls
// are present.
func (c *Config) VapiConfigured() bool {
	return c.VapiAPIKey != "" && c.VapiAssistantID != "" && c.VapiPhoneNumber != ""
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsSlice retrieves a comma-separated environment variable or returns a
// default value
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		if part = strings.TrimSpace(part); part != "" {
			values = append(values, part)
		}
	}
	if len(values) == 0 {
		return defaultValue
	}
	return values
}
