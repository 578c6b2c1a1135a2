package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix  = "GAMEKIT_"
	envFileVar = "GAMEKIT_CONFIG"
)

// hostEnv maps the variables the hosting platform injects to config keys.
var hostEnv = map[string]string{ //nolint:gochecknoglobals // static lookup table
	"PLAYCADEMY_API_KEY":  "platform_api_key",
	"GAME_ID":             "platform_game_id",
	"PLAYCADEMY_BASE_URL": "platform_base_url",
}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if GAMEKIT_CONFIG is set
//  3. env (prefix GAMEKIT_)
//  4. host-injected platform variables (PLAYCADEMY_API_KEY, GAME_ID, PLAYCADEMY_BASE_URL)
func Load(_ context.Context) (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(envFileVar); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// GAMEKIT_MAX_BODY_BYTES -> max_body_bytes. Underscores are kept to
	// match the flat koanf tags.
	prefixed := env.Provider(envPrefix, ".", func(s string) string {
		if s == envFileVar {
			return ""
		}
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	})
	if err := k.Load(prefixed, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	host := env.Provider("", ".", func(s string) string {
		return hostEnv[s]
	})
	if err := k.Load(host, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
