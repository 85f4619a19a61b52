// Package service holds the request-level domain logic behind the
// HTTP handlers. Everything here talks to storage through interfaces
// so it can be exercised without a live database
package service

import "errors"

var (
	// ErrUnauthorized means the caller has no resolved identity, or
	// the identity no longer maps to a live user
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials covers both unknown email and wrong
	// password so the two cases are indistinguishable to the caller
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrValidation marks rejected input, detected before any
	// persistence call
	ErrValidation = errors.New("validation failed")

	// ErrConflict marks a duplicate unique key on registration
	ErrConflict = errors.New("already registered")

	// ErrNotFound marks a missing record on targeted operations
	ErrNotFound = errors.New("not found")
)
