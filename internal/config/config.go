// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - Flat koanf keys so YAML keys and GAMEKIT_* env vars map one to one.
//   - New returns defaults; Load layers file and environment on top.
//   - External errors are wrapped with this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/gamekit/internal/platform"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8788".
	Addr string `koanf:"addr"`

	// APIPrefix is prepended to every custom route path.
	APIPrefix string `koanf:"api_prefix"`

	// MaxBodyBytes caps the request body a route will read.
	MaxBodyBytes int64 `koanf:"max_body_bytes"`

	// Platform values are normally injected by the host, see hostEnv.
	PlatformAPIKey    string `koanf:"platform_api_key"`
	PlatformGameID    string `koanf:"platform_game_id"`
	PlatformBaseURL   string `koanf:"platform_base_url"`
	PlatformTimeoutMS int    `koanf:"platform_timeout_ms"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8788",
		APIPrefix:         "/api",
		MaxBodyBytes:      1 << 20,
		PlatformTimeoutMS: 10_000,
	}
}

// PlatformEnv returns the host-injected platform values.
func (c *Config) PlatformEnv() platform.Env {
	return platform.Env{
		APIKey:  c.PlatformAPIKey,
		GameID:  c.PlatformGameID,
		BaseURL: c.PlatformBaseURL,
	}
}

// PlatformTimeout returns the platform client timeout.
func (c *Config) PlatformTimeout() time.Duration {
	return time.Duration(c.PlatformTimeoutMS) * time.Millisecond
}

// Validate checks the invariants the server relies on.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case !strings.HasPrefix(c.APIPrefix, "/"):
		return fmt.Errorf("%w: api_prefix must start with /", ErrInvalidConfig)
	case c.MaxBodyBytes <= 0:
		return fmt.Errorf("%w: max_body_bytes must be positive", ErrInvalidConfig)
	case c.PlatformTimeoutMS < 0:
		return fmt.Errorf("%w: platform_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if err := c.PlatformEnv().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
