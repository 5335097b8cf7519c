// Package config handles application configuration from environment variables
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration.
type Config struct {
	// APIKey authenticates against HIBP. Anonymous endpoints work without it.
	APIKey    string `env:"HIBP_API_KEY"`
	UserAgent string `env:"HIBP_USER_AGENT" envDefault:"breachwatch/1.0"`
	BaseURL   string `env:"HIBP_BASE_URL"`

	// CacheDir overrides the platform cache directory.
	CacheDir string `env:"HIBP_CACHE_DIR"`
	// CacheTTL, when set, expires cache entries on age alone.
	CacheTTL time.Duration `env:"HIBP_CACHE_TTL"`
	// NoCache disables response caching entirely.
	NoCache bool `env:"HIBP_NOCACHE"`
	// RedisAddr, when set, stores cache entries in Redis instead of files.
	RedisAddr string `env:"HIBP_REDIS_ADDR"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// CacheEnabled returns true unless caching was switched off.
func (c *Config) CacheEnabled() bool {
	return !c.NoCache
}
