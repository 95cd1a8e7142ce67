package api

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingBaseURL is returned when the client is created without a base URL.
	ErrMissingBaseURL = errors.New("api: missing base URL")
	// ErrUnauthorized wraps the error returned for 401 responses, after the
	// OnUnauthorized hook has run. Match with errors.Is; the backend's message
	// and status stay reachable through the wrapped *Error.
	ErrUnauthorized = errors.New("api: unauthorized")
)

// Error is a backend-rejected request: a non-2xx response with the backend's
// {"message": "..."} payload when present.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("api: request failed with status %d", e.Status)
}

// BackendMessage returns the backend-supplied message. Core packages assert
// for this method via a local interface rather than importing this package.
func (e *Error) BackendMessage() string { return e.Message }

// StatusCode returns the HTTP status of the rejected request.
func (e *Error) StatusCode() int { return e.Status }

// Message extracts the backend's human-readable error message from err,
// falling back to the provided default. This mirrors the managers' uniform
// result contract: callers always get something presentable.
func Message(err error, fallback string) string {
	var apiErr *Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// StatusOf returns the HTTP status carried by err, or 0 for transport errors.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}
