package platform

import (
	"errors"
	"fmt"
)

// Sentinel kinds for platform errors.
var (
	ErrInvalidEnv       = errors.New("invalid platform env")
	ErrRequest          = errors.New("platform request failed")
	ErrUnexpectedStatus = errors.New("unexpected platform status")
	ErrDecode           = errors.New("decode platform response")
)

// StatusError is returned for non-2xx responses. It keeps the body so
// callers can inspect error payloads such as a 400 MalformedBody reply.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       []byte
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: status %d", e.Method, e.URL, e.StatusCode)
}

// Unwrap lets errors.Is match ErrUnexpectedStatus.
func (e *StatusError) Unwrap() error { return ErrUnexpectedStatus }
