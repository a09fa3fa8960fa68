package aetheris

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrValidation indicates a request failed validation.
	ErrValidation = errors.New("validation error")

	// ErrHTTPStatus indicates the server answered with a non-success status.
	ErrHTTPStatus = errors.New("unexpected HTTP status")

	// ErrAPI indicates the response envelope carried a non-zero code.
	ErrAPI = errors.New("api error")

	// ErrStreamEnded indicates an operation on a stream that already ended.
	ErrStreamEnded = errors.New("stream ended")
)
