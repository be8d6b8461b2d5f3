// Package common defines shared constants and sentinel errors used across
// meetpoint components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Registry uniqueness violations. Neither is retryable with the same
	// input; callers must change the value or treat the identity as already
	// registered.
	ErrDuplicateExternalID   = errors.New("external id already registered")
	ErrDuplicateIdentityPair = errors.New("identity pair already registered")

	// Validation errors (caller mistakes, reported before any write).
	ErrInvalidInput = errors.New("invalid input")

	// Transport-level errors.
	ErrUnauthorized = errors.New("unauthorized")

	// Generic/internal flow control.
	ErrInternal = errors.New("internal error")

	// Transient infrastructure failures, safe to retry with backoff.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
