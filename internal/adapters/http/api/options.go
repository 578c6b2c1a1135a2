package api

import "github.com/okian/gamekit/pkg/logger"

const (
	defaultPrefix       = "/api"
	defaultMaxBodyBytes = 1 << 20
)

// Option configures a Server.
type Option func(*Server)

// WithPrefix sets the path prefix under which routes are mounted.
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		if prefix != "" {
			s.prefix = prefix
		}
	}
}

// WithMaxBodyBytes caps the request body read for a route.
func WithMaxBodyBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxBodyBytes = n
		}
	}
}

// WithLogger sets the access logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}
