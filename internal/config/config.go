package config

import "os"

// Config holds application configuration. All values come from the
// environment and none are required; the service starts with sane defaults.
type Config struct {
	ServerPort      string
	CORSOrigin      string
	EnableHSTS      bool
	ServerDebugMode bool
	RedisURL        string
	RateLimit       string
	OTELEnabled     bool
	OTELEndpoint    string
}

// Load reads configuration from environment variables.
//
// CORS_ORIGIN is intentionally read exactly once, here: the origin policy is
// parsed from it at startup and never re-read per request.
func Load() (*Config, error) {
	cfg := &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		CORSOrigin:      getEnv("CORS_ORIGIN", ""),
		EnableHSTS:      getEnvBool("ENABLE_HSTS", false),
		ServerDebugMode: getEnvBool("SERVER_DEBUG_MODE", false),
		RedisURL:        getEnv("REDIS_URL", ""),
		RateLimit:       getEnv("RATE_LIMIT", "100-M"),
		OTELEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTELEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}
	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		return value == "true" || value == "1" || value == "yes"
	}
	return defaultValue
}
