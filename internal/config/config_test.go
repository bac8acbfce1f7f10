package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("LESGO_BASE_URL", "https://example.leading2lean.com")
	t.Setenv("LESGO_API_KEY", "test-key")

	cfg := FromEnv()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Pretty)
	assert.Empty(t, cfg.RedisAddr)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LESGO_BASE_URL", "https://example.leading2lean.com")
	t.Setenv("LESGO_API_KEY", "test-key")
	t.Setenv("LESGO_SITE", "3")
	t.Setenv("LESGO_PAGE_SIZE", "25")
	t.Setenv("LESGO_TIMEOUT", "5s")
	t.Setenv("LESGO_CACHE_TTL", "2m")
	t.Setenv("LESGO_REDIS_ADDR", "localhost:6379")
	t.Setenv("LESGO_LOG_LEVEL", "debug")
	t.Setenv("LESGO_LOG_PRETTY", "true")

	cfg := FromEnv()

	require.NoError(t, cfg.Validate())
	assert.Equal(t, 3, cfg.Site)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Pretty)
}

func TestValidate_Failures(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "missing base url", mutate: func(c *Config) { c.BaseURL = "" }},
		{name: "bad base url", mutate: func(c *Config) { c.BaseURL = "not a url" }},
		{name: "missing api key", mutate: func(c *Config) { c.APIKey = "" }},
		{name: "zero page size", mutate: func(c *Config) { c.PageSize = 0 }},
		{name: "bad log level", mutate: func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				BaseURL:  "https://example.leading2lean.com",
				APIKey:   "test-key",
				PageSize: 100,
				LogLevel: "info",
			}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("LESGO_BASE_URL", "https://example.leading2lean.com")
	t.Setenv("LESGO_API_KEY", "test-key")
	t.Setenv("LESGO_PAGE_SIZE", "lots")
	t.Setenv("LESGO_TIMEOUT", "soon")
	t.Setenv("LESGO_LOG_PRETTY", "sure")

	cfg := FromEnv()

	assert.Equal(t, 100, cfg.PageSize)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.False(t, cfg.Pretty)
}
