package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/spetersoncode/garmin-mcp/garmin"
)

// Config holds the server configuration loaded from environment variables.
type Config struct {
	// Transport
	Transport string // stdio or http
	Host      string
	Port      string
	Path      string

	// Logging
	LogLevel      string // trace, debug, info, warn, error, fatal
	LogFormatJSON bool

	// Garmin auth
	TokenJSON string // raw OAuth2 token JSON, wins over TokenDir
	TokenDir  string

	// Client tuning
	RateLimitPerMinute int
	RetryAttempts      int
	HTTPTimeout        time.Duration
}

// LoadConfig loads configuration from environment variables.
// It loads a .env file if present (silent fail if not found).
func LoadConfig() (*Config, error) {
	godotenv.Load() // Load .env file if present

	cfg := &Config{
		Transport:          getEnvOrDefault("GARMIN_MCP_TRANSPORT", "stdio"),
		Host:               getEnvOrDefault("GARMIN_MCP_HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("GARMIN_MCP_PORT", "8000"),
		Path:               getEnvOrDefault("GARMIN_MCP_PATH", "/mcp"),
		LogLevel:           getEnvOrDefault("GARMIN_MCP_LOG_LEVEL", "info"),
		LogFormatJSON:      getEnvBoolOrDefault("GARMIN_MCP_LOG_JSON", false),
		TokenJSON:          os.Getenv("GARMIN_OAUTH_TOKEN"),
		TokenDir:           getEnvOrDefault("GARMINTOKENS", garmin.DefaultTokenDir),
		RateLimitPerMinute: getEnvIntOrDefault("GARMIN_MCP_RATE_LIMIT", 60),
		RetryAttempts:      getEnvIntOrDefault("GARMIN_MCP_RETRY_ATTEMPTS", 3),
		HTTPTimeout:        getEnvDurationOrDefault("GARMIN_MCP_HTTP_TIMEOUT", 30*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	switch c.Transport {
	case "stdio", "http":
	default:
		return fmt.Errorf("unknown transport: %s (must be stdio or http)", c.Transport)
	}

	if c.Transport == "http" {
		if _, err := strconv.Atoi(c.Port); err != nil {
			return fmt.Errorf("invalid GARMIN_MCP_PORT: %s", c.Port)
		}
	}

	if c.RetryAttempts < 1 {
		return fmt.Errorf("GARMIN_MCP_RETRY_ATTEMPTS must be at least 1")
	}

	return nil
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return c.Host + ":" + c.Port
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
