package redis

import "errors"

var (
	// ErrEmptyConnectionURL is returned when no connection URL is configured.
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")

	// ErrFailedToParseConnString is returned for a malformed connection URL.
	ErrFailedToParseConnString = errors.New("redis: failed to parse connection string")

	// ErrNotReady is returned when Redis does not answer a ping within the
	// configured retry budget.
	ErrNotReady = errors.New("redis: not ready")
)
