package config

import (
	"errors"
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int
	DatabasePath string
	// Domain is this server's public base URL, embedded in uploaded file
	// URLs.
	Domain string
	// AppURL is the frontend's base URL. Verification and reset links in
	// emails point here; the frontend pages behind them call the API.
	AppURL     string
	UploadsDir string

	JWTSecret  string
	SessionTTL time.Duration

	// ResetWindow is how long a password reset token stays valid.
	ResetWindow time.Duration
	// SweepSchedule is a cron expression for the expired reset-token sweep.
	SweepSchedule string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8080"))
	if err != nil {
		return nil, err
	}

	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, err
	}

	sessionTTL, err := time.ParseDuration(getEnv("SESSION_TTL", "24h"))
	if err != nil {
		return nil, err
	}

	resetWindow, err := time.ParseDuration(getEnv("RESET_WINDOW", "1h"))
	if err != nil {
		return nil, err
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}

	return &Config{
		ServerPort:    port,
		DatabasePath:  getEnv("DATABASE_PATH", "./socialize.db"),
		Domain:        getEnv("DOMAIN", "http://localhost:8080"),
		AppURL:        getEnv("APP_URL", "http://localhost:3000"),
		UploadsDir:    getEnv("UPLOADS_DIR", "./uploads"),
		JWTSecret:     jwtSecret,
		SessionTTL:    sessionTTL,
		ResetWindow:   resetWindow,
		SweepSchedule: getEnv("SWEEP_SCHEDULE", "*/15 * * * *"),
		SMTPHost:      getEnv("SMTP_HOST", ""),
		SMTPPort:      smtpPort,
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:      getEnv("SMTP_FROM", "no-reply@localhost"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
