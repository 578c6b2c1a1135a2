package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/okian/gamekit/pkg/logger"
	"github.com/okian/gamekit/pkg/metrics"
)

const (
	defaultTimeout       = 10 * time.Second
	defaultUserAgent     = "gamekit/1"
	defaultBackendPrefix = "/api"
	headerGameID         = "X-Game-ID"
)

// Client calls platform endpoints on behalf of a game. It is safe for
// concurrent use.
type Client struct {
	env           Env
	doer          HTTPDoer
	timeout       time.Duration
	userAgent     string
	backendPrefix string
	log           logger.Logger
}

// NewClient builds a Client for env.
func NewClient(env Env, opts ...Option) (*Client, error) {
	if !env.Configured() {
		return nil, fmt.Errorf("%w: base url is required", ErrInvalidEnv)
	}
	if err := env.Validate(); err != nil {
		return nil, err
	}
	c := &Client{
		env:           env,
		timeout:       defaultTimeout,
		userAgent:     defaultUserAgent,
		backendPrefix: defaultBackendPrefix,
		log:           logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.doer == nil {
		c.doer = &http.Client{Timeout: c.timeout}
	}
	return c, nil
}

// Env returns the environment the client was built with.
func (c *Client) Env() Env { return c.env }

// Backend returns a client for the game's own custom routes.
func (c *Client) Backend() *BackendClient {
	return &BackendClient{c: c}
}

func (c *Client) buildURL(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(c.env.BaseURL, "/") + path
}

// Do sends a request and returns the response body. body may be nil, a
// []byte or json.RawMessage sent as-is, or any value encoded as JSON.
func (c *Client) Do(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	payload, err := encodeBody(body)
	if err != nil {
		return nil, err
	}
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	url := c.buildURL(path)
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.env.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.env.APIKey)
	}
	if c.env.GameID != "" {
		req.Header.Set(headerGameID, c.env.GameID)
	}

	start := time.Now()
	resp, err := c.doer.Do(req)
	elapsed := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordPlatformRequest(method, "error", elapsed)
		return nil, fmt.Errorf("%w: %s %s: %w", ErrRequest, method, url, err)
	}
	defer resp.Body.Close()
	metrics.RecordPlatformRequest(method, strconv.Itoa(resp.StatusCode), elapsed)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrRequest, err)
	}
	c.log.Debug(ctx, "platform request",
		logger.String("method", method),
		logger.String("url", url),
		logger.Int("status", resp.StatusCode),
		logger.Float64("duration_ms", elapsed),
	)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &StatusError{Method: method, URL: url, StatusCode: resp.StatusCode, Body: data}
	}
	return json.RawMessage(data), nil
}

func encodeBody(body any) ([]byte, error) {
	switch b := body.(type) {
	case nil:
		return nil, nil
	case json.RawMessage:
		return b, nil
	case []byte:
		return b, nil
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %w", ErrRequest, err)
		}
		return data, nil
	}
}

// Decode unmarshals a response into out.
func Decode(raw json.RawMessage, out any) error {
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return nil
}
