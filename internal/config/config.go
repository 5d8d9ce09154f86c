package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	// Backend configuration
	BaseURL        string
	HTTPTimeoutSec int

	// Optional pre-provisioned bearer token (normally obtained via login)
	AuthToken string

	// Stub server configuration
	StubHost      string
	StubPort      string
	StubJWTSecret string

	// Logging configuration
	LogLevel string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{}

	// Backend configuration
	cfg.BaseURL = getEnvOrDefault("WALKCORE_BASE_URL", "http://localhost:3000/walkcore-backend")

	timeoutStr := getEnvOrDefault("HTTP_TIMEOUT_SEC", "30")
	timeout, err := strconv.Atoi(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT_SEC: %v", err)
	}
	cfg.HTTPTimeoutSec = timeout

	cfg.AuthToken = os.Getenv("AUTH_TOKEN")

	// Stub server configuration
	cfg.StubHost = "0.0.0.0"
	cfg.StubPort = getEnvOrDefault("STUB_PORT", "3000")
	cfg.StubJWTSecret = getEnvOrDefault("STUB_JWT_SECRET", "dev-secret-change-me")

	// Logging configuration
	cfg.LogLevel = getEnvOrDefault("LOG_LEVEL", "info")

	return cfg, nil
}

// Validate performs validation on the configuration
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.BaseURL, "http://") && !strings.HasPrefix(c.BaseURL, "https://") {
		return fmt.Errorf("WALKCORE_BASE_URL must start with http:// or https://")
	}

	if c.HTTPTimeoutSec < 1 || c.HTTPTimeoutSec > 300 {
		return fmt.Errorf("HTTP_TIMEOUT_SEC must be between 1 and 300")
	}

	if c.StubJWTSecret == "" {
		return fmt.Errorf("STUB_JWT_SECRET must not be empty")
	}

	// Validate log level
	validLevels := []string{"debug", "info", "warn", "error"}
	validLevel := false
	for _, level := range validLevels {
		if c.LogLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("LOG_LEVEL must be one of: %s", strings.Join(validLevels, ", "))
	}

	return nil
}

// String returns a string representation of the config (for logging, without sensitive data)
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{BaseURL: %s, TimeoutSec: %d, LogLevel: %s, StubPort: %s, AuthToken: %s}",
		c.BaseURL, c.HTTPTimeoutSec, c.LogLevel, c.StubPort, maskSecret(c.AuthToken),
	)
}

// Helper functions

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// maskSecret hides all but the first few characters of a credential
func maskSecret(s string) string {
	if s == "" {
		return "(unset)"
	}
	if len(s) <= 4 {
		return "***"
	}
	return s[:4] + "***"
}
