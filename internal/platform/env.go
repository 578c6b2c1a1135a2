// Package platform models the values and client the game platform hands to
// a game's backend.
package platform

import (
	"fmt"
	"net/url"
	"strings"
)

// Env carries the host-injected platform configuration.
type Env struct {
	// APIKey is the game-scoped key for calling platform APIs.
	APIKey string
	// GameID is the game's unique identifier.
	GameID string
	// BaseURL is the platform URL, e.g. https://hub.playcademy.net.
	BaseURL string
}

// Validate reports whether BaseURL, when set, is an absolute http(s) URL.
func (e Env) Validate() error {
	if e.BaseURL == "" {
		return nil
	}
	u, err := url.Parse(e.BaseURL)
	if err != nil {
		return fmt.Errorf("%w: base url: %w", ErrInvalidEnv, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: base url scheme %q", ErrInvalidEnv, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: base url has no host", ErrInvalidEnv)
	}
	return nil
}

// Configured reports whether a client can be built from e.
func (e Env) Configured() bool {
	return strings.TrimSpace(e.BaseURL) != ""
}
