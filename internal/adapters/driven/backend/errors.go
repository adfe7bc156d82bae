package backend

import "errors"

var (
	// ErrInvalidBaseURL indicates the configured base URL cannot be used.
	ErrInvalidBaseURL = errors.New("backend: base URL must be an absolute http(s) URL")

	// ErrUnexpectedStatus indicates the backend answered with a non-success status.
	ErrUnexpectedStatus = errors.New("backend: unexpected status")

	// ErrPayloadTooLarge indicates a response body exceeded the read limit.
	ErrPayloadTooLarge = errors.New("backend: payload too large")
)
