package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingContentType indicates the target content type does not
	// exist in the destination environment. The run cannot proceed.
	ErrMissingContentType = errors.New("target content type not found")

	// ErrAuthInvalid indicates the destination rejected the management token.
	ErrAuthInvalid = errors.New("authentication invalid")

	// ErrRateLimited indicates the API rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")

	// ErrSourceUnavailable indicates the source API could not be reached.
	ErrSourceUnavailable = errors.New("source unavailable")
)
