package util

import "errors"

var (
	// ErrUserNotFound means the authenticated identity no longer maps to a
	// stored user (stale credential after a data reset). Callers must treat
	// the session as invalid instead of auto-creating orphaned rows.
	ErrUserNotFound = errors.New("user not found")

	// ErrProfileNotFound means a dependent profile row is missing and could
	// not be created on the legacy auto-create path.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrValidation marks malformed input rejected before any transaction
	// opens. Wrap it with the violated field for the response message.
	ErrValidation = errors.New("validation failed")

	// ErrStorageFailure marks a transaction that could not commit. The
	// all-or-nothing boundary makes it always safe to retry.
	ErrStorageFailure = errors.New("storage failure")

	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
