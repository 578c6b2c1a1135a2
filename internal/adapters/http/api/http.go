// Package api binds the game's routes to net/http.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/okian/gamekit/internal/routes"
	"github.com/okian/gamekit/pkg/logger"
	"github.com/okian/gamekit/pkg/metrics"
)

// Server wires HTTP routes for the custom backend API.
type Server struct {
	routes       []routes.Route
	prefix       string
	maxBodyBytes int64
	log          logger.Logger
	health       *HealthHandler
}

// NewServer creates a server for rs.
func NewServer(rs []routes.Route, opts ...Option) *Server {
	s := &Server{
		routes:       rs,
		prefix:       defaultPrefix,
		maxBodyBytes: defaultMaxBodyBytes,
		log:          logger.Nop(),
		health:       NewHealthHandler(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.prefix = "/" + strings.Trim(s.prefix, "/")
	if s.prefix == "/" {
		s.prefix = ""
	}
	return s
}

// Path returns the full mount path of a route path.
func (s *Server) Path(routePath string) string {
	return s.prefix + "/" + strings.TrimLeft(routePath, "/")
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", s.wrap(s.health.HandleHealth, "healthz"))
	for _, r := range s.routes {
		full := s.Path(r.Path)
		mux.HandleFunc(full, s.wrap(s.routeHandler(r), full))
		s.log.Debug(ctx, "route registered",
			logger.String("path", full),
			logger.String("methods", strings.Join(r.Allowed(), ",")),
		)
	}
	mux.HandleFunc("/", s.wrap(handleNotFound, "not_found"))
}

func (s *Server) wrap(h http.HandlerFunc, endpoint string) http.HandlerFunc {
	return RequestIDMiddleware(
		LoggingMiddleware(s.log,
			MetricsMiddleware(
				RecoverMiddleware(s.log, h),
				endpoint)))
}

// routeHandler adapts a routes.Route to net/http: read the body, pick the
// handler by method, write the JSON response.
func (s *Server) routeHandler(route routes.Route) http.HandlerFunc {
	const op = "api.route"
	allow := strings.Join(route.Allowed(), ", ")

	return func(w http.ResponseWriter, r *http.Request) {
		handle, ok := route.Handler(r.Method)
		if !ok {
			w.Header().Set("Allow", allow)
			writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", NewKind(op, ErrMethodNotAllowed))
			return
		}

		body, err := s.readBody(w, r)
		if err != nil {
			// An unreadable or oversize body is handed on as absent, which
			// the route reports as MalformedBody if it needs one.
			s.log.Warn(r.Context(), "request body dropped",
				logger.String("path", r.URL.Path),
				logger.Bool("too_large", isMaxBytes(err)),
				logger.Error(WrapKind(op, ErrBadRequest, err)),
			)
			body = nil
		}

		resp := handle(r.Context(), routes.Request{Method: r.Method, Path: route.Path, Body: body})
		observeResponse(route.Path, resp)

		status := resp.StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		if err := writeJSON(w, status, resp.Body); err != nil {
			s.log.Error(r.Context(), "response encoding failed",
				logger.String("path", r.URL.Path),
				logger.Int("status", status),
				logger.Error(err),
			)
		}
	}
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	if r.Body == nil || r.Body == http.NoBody {
		return nil, nil
	}
	return io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
}

func observeResponse(route string, resp routes.Response) {
	switch b := resp.Body.(type) {
	case routes.FailureResponse:
		metrics.RecordMalformedBody(route)
	case routes.EchoResponse:
		metrics.RecordEchoedPayload(route, len(b.Received))
	}
}

func handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "not_found", NewKind("api.lookup", ErrNotFound))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// fallbackBody is written when a response value cannot be encoded.
var fallbackBody = append(mustMarshal(errorResponse{ //nolint:gochecknoglobals // fixed response
	Code:    "internal",
	Message: http.StatusText(http.StatusInternalServerError),
}), '\n')

func mustMarshal(v any) []byte {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return data
}

// writeJSON encodes v before the status line goes out, so an encoding
// failure still reaches the client as a 500. The encoding error is
// returned for the caller to log.
func writeJSON(w http.ResponseWriter, status int, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		err = WrapKind("api.write", ErrInternal, err)
		status = http.StatusInternalServerError
		data = fallbackBody
	} else {
		data = append(data, '\n')
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
	return err
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	_ = writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// isMaxBytes reports whether err came from an oversize body.
func isMaxBytes(err error) bool {
	var mbe *http.MaxBytesError
	return errors.As(err, &mbe)
}
