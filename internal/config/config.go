package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Scheduling API the booking flow talks to.
	APIBaseURL  string
	APIToken    string
	HTTPTimeout time.Duration

	// Timeout for the appointment write call.
	SubmitTimeout time.Duration

	RedisAddr        string
	RedisPassword    string
	RedisTLS         bool
	ProviderCacheTTL time.Duration

	MetricsEnabled bool
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:             getEnv("PORT", "8080"),
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		APIBaseURL:       getEnv("API_BASE_URL", "http://localhost:3333"),
		APIToken:         getEnv("API_TOKEN", ""),
		HTTPTimeout:      getEnvAsDuration("HTTP_TIMEOUT", 20*time.Second),
		SubmitTimeout:    getEnvAsDuration("SUBMIT_TIMEOUT", 15*time.Second),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RedisTLS:         getEnvAsBool("REDIS_TLS", false),
		ProviderCacheTTL: getEnvAsDuration("PROVIDER_CACHE_TTL", 5*time.Minute),
		MetricsEnabled:   getEnvAsBool("METRICS_ENABLED", true),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return defaultValue
}
