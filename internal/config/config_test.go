package config

import (
	"os"
	"testing"
)

func TestLoad(t *testing.T) {
	originalEnv := make(map[string]string)
	envKeys := []string{
		"WALKCORE_BASE_URL",
		"HTTP_TIMEOUT_SEC",
		"AUTH_TOKEN",
		"STUB_PORT",
		"STUB_JWT_SECRET",
		"LOG_LEVEL",
	}

	for _, key := range envKeys {
		originalEnv[key] = os.Getenv(key)
	}

	defer func() {
		for _, key := range envKeys {
			if value, exists := originalEnv[key]; exists && value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("load_with_defaults", func(t *testing.T) {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.BaseURL != "http://localhost:3000/walkcore-backend" {
			t.Errorf("Expected default BaseURL, got '%s'", cfg.BaseURL)
		}

		if cfg.HTTPTimeoutSec != 30 {
			t.Errorf("Expected HTTPTimeoutSec to be 30, got %d", cfg.HTTPTimeoutSec)
		}

		if cfg.AuthToken != "" {
			t.Errorf("Expected AuthToken to be empty, got '%s'", cfg.AuthToken)
		}

		if cfg.StubHost != "0.0.0.0" {
			t.Errorf("Expected StubHost to be '0.0.0.0', got '%s'", cfg.StubHost)
		}

		if cfg.StubPort != "3000" {
			t.Errorf("Expected StubPort to be '3000', got '%s'", cfg.StubPort)
		}

		if cfg.LogLevel != "info" {
			t.Errorf("Expected LogLevel to be 'info', got '%s'", cfg.LogLevel)
		}
	})

	t.Run("load_with_custom_env", func(t *testing.T) {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}

		os.Setenv("WALKCORE_BASE_URL", "https://api.example.com/walkcore-backend")
		os.Setenv("HTTP_TIMEOUT_SEC", "10")
		os.Setenv("AUTH_TOKEN", "token-abc")
		os.Setenv("LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Expected no error, got: %v", err)
		}

		if cfg.BaseURL != "https://api.example.com/walkcore-backend" {
			t.Errorf("Expected custom BaseURL, got '%s'", cfg.BaseURL)
		}

		if cfg.HTTPTimeoutSec != 10 {
			t.Errorf("Expected HTTPTimeoutSec to be 10, got %d", cfg.HTTPTimeoutSec)
		}

		if cfg.AuthToken != "token-abc" {
			t.Errorf("Expected AuthToken to be 'token-abc', got '%s'", cfg.AuthToken)
		}

		if cfg.LogLevel != "debug" {
			t.Errorf("Expected LogLevel to be 'debug', got '%s'", cfg.LogLevel)
		}
	})

	t.Run("invalid_timeout", func(t *testing.T) {
		for _, key := range envKeys {
			os.Unsetenv(key)
		}

		os.Setenv("HTTP_TIMEOUT_SEC", "not-a-number")

		_, err := Load()
		if err == nil {
			t.Fatal("Expected error for invalid HTTP_TIMEOUT_SEC, got nil")
		}
	})
}

func TestValidate(t *testing.T) {
	t.Run("valid_config", func(t *testing.T) {
		cfg := &Config{
			BaseURL:        "http://localhost:3000/walkcore-backend",
			HTTPTimeoutSec: 30,
			StubJWTSecret:  "secret",
			LogLevel:       "info",
		}

		err := cfg.Validate()
		if err != nil {
			t.Errorf("Expected no error for valid config, got: %v", err)
		}
	})

	t.Run("invalid_base_url", func(t *testing.T) {
		cfg := &Config{
			BaseURL:        "ftp://example.com",
			HTTPTimeoutSec: 30,
			StubJWTSecret:  "secret",
			LogLevel:       "info",
		}

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected error for invalid base URL, got nil")
		}
	})

	t.Run("invalid_timeout_range", func(t *testing.T) {
		cfg := &Config{
			BaseURL:        "http://localhost:3000",
			HTTPTimeoutSec: 0,
			StubJWTSecret:  "secret",
			LogLevel:       "info",
		}

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected error for out-of-range timeout, got nil")
		}
	})

	t.Run("invalid_log_level", func(t *testing.T) {
		cfg := &Config{
			BaseURL:        "http://localhost:3000",
			HTTPTimeoutSec: 30,
			StubJWTSecret:  "secret",
			LogLevel:       "invalid",
		}

		err := cfg.Validate()
		if err == nil {
			t.Fatal("Expected error for invalid log level, got nil")
		}
	})
}

func TestConfigString(t *testing.T) {
	cfg := &Config{
		BaseURL:        "http://localhost:3000/walkcore-backend",
		HTTPTimeoutSec: 30,
		AuthToken:      "super-secret-token",
		LogLevel:       "info",
		StubPort:       "3000",
	}

	str := cfg.String()

	if str == "" {
		t.Error("Config string should not be empty")
	}

	// The raw token must never appear in log output
	if contains := str; len(contains) > 0 {
		for i := 0; i+len(cfg.AuthToken) <= len(str); i++ {
			if str[i:i+len(cfg.AuthToken)] == cfg.AuthToken {
				t.Error("Config string must not contain the raw auth token")
			}
		}
	}
}
