// Package routes holds the custom backend routes of the game and the
// contract every route follows: a pure mapping from Request to Response.
package routes

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/okian/gamekit/internal/platform"
)

// Request is what a route sees of an inbound call. The path is already
// resolved by the router; Body is the raw, possibly empty, payload.
type Request struct {
	Method string
	Path   string
	Body   []byte
}

// Response is created fresh per call and returned, never retained.
type Response struct {
	StatusCode int
	Body       any
}

// HandlerFunc serves a single method of a route.
type HandlerFunc func(ctx context.Context, req Request) Response

// Route binds handlers to methods under one path.
type Route struct {
	Path    string
	Methods map[string]HandlerFunc
}

// Handler returns the handler bound to method, if any.
func (r Route) Handler(method string) (HandlerFunc, bool) {
	h, ok := r.Methods[method]
	return h, ok
}

// Allowed lists the bound methods in sorted order, for Allow headers.
func (r Route) Allowed() []string {
	out := make([]string, 0, len(r.Methods))
	for m := range r.Methods {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Clock returns the current time.
type Clock func() time.Time

// Deps are the collaborators a route may use. They are passed in
// explicitly instead of being read from a request-scoped context.
type Deps struct {
	Clock Clock
	Env   platform.Env
	// Client is nil when the platform is not configured.
	Client *platform.Client
}

func (d Deps) now() time.Time {
	if d.Clock == nil {
		return time.Now()
	}
	return d.Clock()
}

// Default returns the sample routes shipped with the template.
func Default(deps Deps) []Route {
	return []Route{
		Hello(deps),
		SampleCustom(deps),
	}
}

// JSON builds a Response with the given status and body.
func JSON(status int, body any) Response {
	return Response{StatusCode: status, Body: body}
}

// OK builds a 200 Response.
func OK(body any) Response {
	return JSON(http.StatusOK, body)
}
