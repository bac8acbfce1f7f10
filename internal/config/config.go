// Package config loads the demo CLI configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config holds everything the demo CLI needs to talk to an API deployment.
type Config struct {
	BaseURL  string `validate:"required,url"`
	APIKey   string `validate:"required"`
	Site     int    `validate:"gte=0"`
	PageSize int    `validate:"gte=1"`

	Timeout  time.Duration
	CacheTTL time.Duration

	// RedisAddr enables the GET response cache when set.
	RedisAddr string

	LogLevel string `validate:"oneof=debug info warn error"`
	Pretty   bool
}

// FromEnv builds a Config from LESGO_* environment variables with defaults.
// Call Validate before using it.
func FromEnv() *Config {
	return &Config{
		BaseURL:   os.Getenv("LESGO_BASE_URL"),
		APIKey:    os.Getenv("LESGO_API_KEY"),
		Site:      intEnv("LESGO_SITE", 0),
		PageSize:  intEnv("LESGO_PAGE_SIZE", 100),
		Timeout:   durationEnv("LESGO_TIMEOUT", 30*time.Second),
		CacheTTL:  durationEnv("LESGO_CACHE_TTL", 0),
		RedisAddr: os.Getenv("LESGO_REDIS_ADDR"),
		LogLevel:  stringEnv("LESGO_LOG_LEVEL", "info"),
		Pretty:    boolEnv("LESGO_LOG_PRETTY", false),
	}
}

// Validate checks the configuration against its struct rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func stringEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func intEnv(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func boolEnv(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
