// Package config provides configuration management for the application.
package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/amaumene/film21/internal/constants"
)

const (
	// Default configuration file name
	defaultConfigFile = "config.json"
	// Default database path
	defaultDatabasePath = "./data.db"
)

// Config holds the application configuration.
// It supports loading from environment variables and JSON files.
type Config struct {
	// MainURL is the scheme and host of the catalog site.
	MainURL string `json:"FILM21_URL"`

	// Server settings
	Port string `json:"PORT"`

	// Storage settings
	DatabasePath string `json:"DATABASE_PATH"`

	// Logging
	LogLevel string `json:"LOG_LEVEL"`
	LogFile  string `json:"LOG_FILE"`

	// HTTPTimeoutSeconds is the per-request timeout of outgoing requests.
	HTTPTimeoutSeconds int `json:"HTTP_TIMEOUT"`
	// HomeConcurrency bounds concurrent section loads of the home view.
	HomeConcurrency int `json:"HOME_CONCURRENCY"`
}

// Load reads configuration from an optional JSON file and environment variables.
// Environment variables take precedence over file values.
// Returns an error if the configuration is invalid.
func Load() (*Config, error) {
	cfg := &Config{}

	// Load from config file if exists
	configFile := getEnvOrDefault("CONFIG_FILE", defaultConfigFile)
	if err := cfg.loadFromFile(configFile); err != nil {
		// Ignore file not found errors
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Load from environment variables
	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromEnv loads configuration from environment variables.
func (c *Config) loadFromEnv() error {
	if v := os.Getenv("FILM21_URL"); v != "" {
		c.MainURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Port = v
	}
	if v := os.Getenv("DATABASE_PATH"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("HTTP_TIMEOUT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HTTP_TIMEOUT %q: %w", v, err)
		}
		c.HTTPTimeoutSeconds = n
	}
	if v := os.Getenv("HOME_CONCURRENCY"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid HOME_CONCURRENCY %q: %w", v, err)
		}
		c.HomeConcurrency = n
	}
	return nil
}

// loadFromFile loads configuration from a JSON file.
func (c *Config) loadFromFile(filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return json.Unmarshal(data, c)
}

// Validate checks if the configuration is valid.
// Sets default values for missing optional fields.
func (c *Config) Validate() error {
	if c.MainURL == "" {
		c.MainURL = constants.DefaultMainURL
	}
	c.MainURL = strings.TrimRight(strings.TrimSpace(c.MainURL), "/")
	u, err := url.Parse(c.MainURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("FILM21_URL must be an absolute URL, got %q", c.MainURL)
	}

	if c.Port == "" {
		c.Port = constants.DefaultPort
	}
	if c.DatabasePath == "" {
		c.DatabasePath = defaultDatabasePath
	}
	if c.LogLevel == "" {
		c.LogLevel = constants.DefaultLogLevel
	}
	if c.HTTPTimeoutSeconds < 0 {
		return fmt.Errorf("HTTP_TIMEOUT must not be negative")
	}
	if c.HTTPTimeoutSeconds == 0 {
		c.HTTPTimeoutSeconds = int(constants.HTTPTimeout / time.Second)
	}
	if c.HomeConcurrency <= 0 {
		c.HomeConcurrency = constants.HomeConcurrency
	}

	return nil
}

// HTTPTimeout returns the outgoing request timeout as a duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.HTTPTimeoutSeconds) * time.Second
}

// getEnvOrDefault returns environment variable value or default if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
