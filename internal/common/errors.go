// Package common defines shared sentinel errors used across the identity
// subsystem. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors. ErrNotFound never crosses the facade boundary;
	// services translate it into one of the external conditions below.
	ErrNotFound = errors.New("not found")

	// External error taxonomy. Everything returned by the identity facade
	// wraps exactly one of these.
	ErrConnectivity       = errors.New("storage unavailable")
	ErrValidation         = errors.New("validation error")
	ErrDuplicateIdentity  = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid session")
	ErrMigrationFailure   = errors.New("migration failure")

	// ErrInternal covers unexpected failures that are none of the above.
	ErrInternal = errors.New("internal error")
)
