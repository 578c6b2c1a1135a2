package smoke

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/okian/gamekit/internal/platform"
	"github.com/okian/gamekit/internal/routes"
)

type checkFunc func(ctx context.Context, b *platform.BackendClient, cfg *Config) error

// checks are run in order; each one exercises one clause of the contract.
var checks = []struct { //nolint:gochecknoglobals // static check table
	name string
	fn   checkFunc
}{
	{"GET /hello returns greeting", checkGreeting("/hello")},
	{"GET /sample/custom returns greeting", checkGreeting("/sample/custom")},
	{"POST /hello echoes object", checkEcho("/hello")},
	{"POST /sample/custom echoes non-object", checkEchoScalar("/sample/custom")},
	{"POST /sample/custom rejects not-json", checkMalformed("/sample/custom", []byte("not-json"))},
	{"POST /hello rejects empty body", checkMalformed("/hello", nil)},
}

func checkGreeting(path string) checkFunc {
	return func(ctx context.Context, b *platform.BackendClient, cfg *Config) error {
		raw, err := b.Get(ctx, path)
		if err != nil {
			return err
		}
		var got routes.GreetingResponse
		if err := platform.Decode(raw, &got); err != nil {
			return err
		}
		if got.Message != routes.GreetingMessage {
			return fmt.Errorf("message %q", got.Message)
		}
		ts, err := time.Parse(time.RFC3339Nano, got.Timestamp)
		if err != nil {
			return fmt.Errorf("timestamp %q: %w", got.Timestamp, err)
		}
		if skew := time.Since(ts); skew > cfg.Tolerance || skew < -cfg.Tolerance {
			return fmt.Errorf("timestamp %s off by %s", got.Timestamp, skew)
		}
		return nil
	}
}

func checkEcho(path string) checkFunc {
	return func(ctx context.Context, b *platform.BackendClient, _ *Config) error {
		sent := map[string]string{"name": "Player", "nonce": uuid.NewString()}
		raw, err := b.Post(ctx, path, sent)
		if err != nil {
			return err
		}
		var got struct {
			Message  string            `json:"message"`
			Received map[string]string `json:"received"`
		}
		if err := platform.Decode(raw, &got); err != nil {
			return err
		}
		if got.Message != routes.ReceivedMessage {
			return fmt.Errorf("message %q", got.Message)
		}
		if got.Received["name"] != sent["name"] || got.Received["nonce"] != sent["nonce"] || len(got.Received) != len(sent) {
			return fmt.Errorf("received %v, sent %v", got.Received, sent)
		}
		return nil
	}
}

func checkEchoScalar(path string) checkFunc {
	return func(ctx context.Context, b *platform.BackendClient, _ *Config) error {
		nonce := uuid.NewString()
		raw, err := b.Post(ctx, path, nonce)
		if err != nil {
			return err
		}
		var got struct {
			Received json.RawMessage `json:"received"`
		}
		if err := platform.Decode(raw, &got); err != nil {
			return err
		}
		var echoed string
		if err := json.Unmarshal(got.Received, &echoed); err != nil || echoed != nonce {
			return fmt.Errorf("received %s, sent %q", got.Received, nonce)
		}
		return nil
	}
}

func checkMalformed(path string, body []byte) checkFunc {
	return func(ctx context.Context, b *platform.BackendClient, _ *Config) error {
		_, err := b.Post(ctx, path, body)
		var se *platform.StatusError
		if !errors.As(err, &se) {
			return fmt.Errorf("expected status error, got %v", err)
		}
		if se.StatusCode != http.StatusBadRequest {
			return fmt.Errorf("status %d", se.StatusCode)
		}
		var got routes.FailureResponse
		if err := json.Unmarshal(se.Body, &got); err != nil {
			return fmt.Errorf("failure body: %w", err)
		}
		if got.Success || got.Error != routes.InvalidJSONBody {
			return fmt.Errorf("failure body %s", se.Body)
		}
		return nil
	}
}
