package service

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared across the client.
var (
	// ErrTimeout indicates a request exceeded its per-operation bound.
	ErrTimeout = errors.New("request timed out")

	// ErrUnauthorized indicates a missing or rejected bearer token.
	ErrUnauthorized = errors.New("not authorized")

	// ErrOffline indicates a connection-level failure before any
	// HTTP status was received.
	ErrOffline = errors.New("cannot reach backend")

	// ErrBusy indicates a second status transition was requested for a
	// task while one is already in flight.
	ErrBusy = errors.New("transition already in progress")
)

// APIError is a non-2xx response from the backend. Message carries the
// server-provided error text when present.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend returned status %d", e.StatusCode)
}

// DecodeError indicates a backend record that cannot be normalized into a
// canonical Task.
type DecodeError struct {
	Field  string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed record: %s: %s", e.Field, e.Reason)
}

// ValidationError carries client-side field violations detected before any
// network call is made.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if len(e.Problems) == 0 {
		return "invalid input"
	}
	return strings.Join(e.Problems, "; ")
}
