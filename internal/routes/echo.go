package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"
)

// Fixed response texts.
const (
	GreetingMessage = "Hello from your game backend!"
	ReceivedMessage = "Received your data!"
	InvalidJSONBody = "Invalid JSON body"
)

// TimestampLayout is ISO-8601 in UTC with millisecond precision.
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// GreetingResponse is the GET payload.
type GreetingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// EchoResponse is the POST success payload. Received structurally echoes
// the request body, whatever JSON value it is: insignificant whitespace is
// dropped, invalid UTF-8 becomes U+FFFD and the encoder escapes <, > and &
// inside strings. Decoding Received yields the value that was sent.
type EchoResponse struct {
	Message  string          `json:"message"`
	Received json.RawMessage `json:"received"`
}

// FailureResponse is the POST payload for a MalformedBody.
type FailureResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// MalformedBody is the only error a route reports. It never leaves the
// handler as an error value; it becomes a 400 response.
func MalformedBody() Response {
	return JSON(http.StatusBadRequest, FailureResponse{Success: false, Error: InvalidJSONBody})
}

// greet serves GET: a fixed message and the clock's current time.
func greet(deps Deps) HandlerFunc {
	return func(_ context.Context, _ Request) Response {
		return OK(GreetingResponse{
			Message:   GreetingMessage,
			Timestamp: deps.now().UTC().Format(TimestampLayout),
		})
	}
}

// echo serves POST: the parsed body wrapped in an envelope, or
// MalformedBody when the body is empty, not JSON, or nested deeper than
// encoding/json will write back out.
func echo() HandlerFunc {
	return func(_ context.Context, req Request) Response {
		if len(req.Body) == 0 || !gjson.ValidBytes(req.Body) {
			return MalformedBody()
		}
		received, err := normalize(req.Body)
		if err != nil {
			return MalformedBody()
		}
		return OK(EchoResponse{
			Message:  ReceivedMessage,
			Received: received,
		})
	}
}

// normalize compacts body into a form encoding/json accepts as a
// RawMessage.
func normalize(body []byte) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, bytes.ToValidUTF8(body, []byte("\uFFFD"))); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
