package platform

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
)

// BackendClient calls the custom routes a game exposes under the backend
// prefix, e.g. Get(ctx, "/hello") -> GET <base>/api/hello.
type BackendClient struct {
	c *Client
}

func (b *BackendClient) path(p string) string {
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return strings.TrimRight(b.c.backendPrefix, "/") + p
}

// Get issues GET path.
func (b *BackendClient) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return b.Request(ctx, path, http.MethodGet, nil)
}

// Post issues POST path with body.
func (b *BackendClient) Post(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return b.Request(ctx, path, http.MethodPost, body)
}

// Put issues PUT path with body.
func (b *BackendClient) Put(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return b.Request(ctx, path, http.MethodPut, body)
}

// Patch issues PATCH path with body.
func (b *BackendClient) Patch(ctx context.Context, path string, body any) (json.RawMessage, error) {
	return b.Request(ctx, path, http.MethodPatch, body)
}

// Delete issues DELETE path.
func (b *BackendClient) Delete(ctx context.Context, path string) (json.RawMessage, error) {
	return b.Request(ctx, path, http.MethodDelete, nil)
}

// Request issues an arbitrary method, including custom ones like OPTIONS.
func (b *BackendClient) Request(ctx context.Context, path, method string, body any) (json.RawMessage, error) {
	return b.c.Do(ctx, strings.ToUpper(method), b.path(path), body)
}
