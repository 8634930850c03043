package app

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Issuer    string // Required: issuer claim for tokens
	JWTSecret string // Required: HMAC key for session and invite tokens
	BaseURL   string // Public origin registration links point at

	DatabaseFile string // Optional: path to SQLite database file (default: ./grants.db)
	PepperFile   string // Optional: path to password pepper file (default: ./pepper)

	// Bootstrap administrator, created only when the users table is empty.
	BootstrapName       string
	BootstrapEmail      string
	BootstrapPassword   string // empty means generate and log one
	BootstrapDepartment string

	// Mailgun credentials. All three empty falls back to logging invites
	// instead of sending them, which is only useful in dev.
	MailgunDomain string
	MailgunAPIKey string
	MailgunFrom   string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:    getEnvOrDefault("GRANTS_ISSUER", "odu-grants"),
		JWTSecret: os.Getenv("GRANTS_JWT_SECRET"),
		BaseURL:   getEnvOrDefault("GRANTS_BASE_URL", "http://localhost:8080"),

		DatabaseFile: getEnvOrDefault("GRANTS_DATABASE_FILE", "grants.db"),
		PepperFile:   getEnvOrDefault("GRANTS_PEPPER_FILE", "pepper"),

		BootstrapName:       getEnvOrDefault("GRANTS_BOOTSTRAP_NAME", "Administrator"),
		BootstrapEmail:      os.Getenv("GRANTS_BOOTSTRAP_EMAIL"),
		BootstrapPassword:   os.Getenv("GRANTS_BOOTSTRAP_PASSWORD"),
		BootstrapDepartment: os.Getenv("GRANTS_BOOTSTRAP_DEPARTMENT"),

		MailgunDomain: os.Getenv("MAILGUN_DOMAIN"),
		MailgunAPIKey: os.Getenv("MAILGUN_API_KEY"),
		MailgunFrom:   os.Getenv("MAILGUN_FROM"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	return cfg
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are taken as minutes.
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
