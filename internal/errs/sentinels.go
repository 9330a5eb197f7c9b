// Package errs contains sentinel errors used across layers for stable error mapping.
package errs

import "errors"

// Common sentinels across repo/service layers.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates failed authentication (bad credentials or bad token).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAlreadyExists indicates a unique constraint violation (identifier taken).
	ErrAlreadyExists = errors.New("already exists")

	// ErrStorageUnavailable indicates a failed document store call; callers do not retry.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
