package platform

import (
	"net/http"
	"time"

	"github.com/okian/gamekit/pkg/logger"
)

// HTTPDoer is the subset of *http.Client used by Client.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPDoer replaces the underlying HTTP client.
func WithHTTPDoer(d HTTPDoer) Option {
	return func(c *Client) {
		if d != nil {
			c.doer = d
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l logger.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.log = l
		}
	}
}

// WithBackendPrefix overrides the path prefix of custom backend routes.
func WithBackendPrefix(prefix string) Option {
	return func(c *Client) {
		if prefix != "" {
			c.backendPrefix = prefix
		}
	}
}
