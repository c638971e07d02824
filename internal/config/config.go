// Package config handles application configuration.
//
// Everything comes from environment variables with defaults that work for
// local development. Both the server and the specdraft CLI read from here.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration.
type Config struct {
	// Server settings
	Port     string
	GinMode  string // "debug", "release", or "test"
	LogLevel string

	// Uploads larger than this are rejected before extraction.
	MaxUploadBytes int64

	// Rate limiting
	DefaultRateLimit int // Requests per hour per client IP

	// CORS
	AllowedOrigins []string

	// Quote documents
	QuoteProfile   string // Optional YAML file with provider/customer parties
	QuoteValidDays int    // 0 = use the profile's value

	// Optional quote.generated webhook
	WebhookURL    string
	WebhookSecret string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Port:     getEnv("PORT", "8080"),
		GinMode:  getEnv("GIN_MODE", "debug"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)), // 10MB

		DefaultRateLimit: getEnvInt("DEFAULT_RATE_LIMIT", 100),

		// CORS — in production, set this to your frontend URL(s)
		AllowedOrigins: splitList(getEnv("CORS_ORIGIN", "http://localhost:5173")),

		QuoteProfile:   getEnv("QUOTE_PROFILE", ""),
		QuoteValidDays: getEnvInt("QUOTE_VALID_DAYS", 0),

		WebhookURL:    getEnv("QUOTE_WEBHOOK_URL", ""),
		WebhookSecret: getEnv("QUOTE_WEBHOOK_SECRET", ""),
	}

	if _, err := log.ParseLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	if cfg.DefaultRateLimit <= 0 {
		return nil, fmt.Errorf("DEFAULT_RATE_LIMIT must be positive, got %d", cfg.DefaultRateLimit)
	}
	if cfg.QuoteValidDays < 0 {
		return nil, fmt.Errorf("QUOTE_VALID_DAYS cannot be negative, got %d", cfg.QuoteValidDays)
	}

	// An unsigned webhook in production is almost certainly a mistake.
	if cfg.GinMode == "release" && cfg.WebhookURL != "" && cfg.WebhookSecret == "" {
		return nil, fmt.Errorf("QUOTE_WEBHOOK_SECRET must be set when QUOTE_WEBHOOK_URL is used in production")
	}

	return cfg, nil
}

// AllowAllOrigins reports whether CORS_ORIGIN contains "*".
func (c *Config) AllowAllOrigins() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

// ConfigureLogging applies the log level and picks a formatter: JSON in
// release mode, human-readable text otherwise.
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.GinMode == "release" {
		log.SetFormatter(&log.JSONFormatter{})
		return
	}
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

// getEnv reads an environment variable with a fallback default.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvInt reads an integer environment variable with a fallback.
func getEnvInt(key string, fallback int) int {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.Atoi(str)
	if err != nil {
		return fallback
	}
	return val
}

// splitList parses a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
