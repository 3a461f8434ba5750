// Package common defines shared constants and sentinel errors used across
// client and server layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal         = errors.New("internal error")
	ErrorUnauthorized     = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Input errors.
	ErrMissingField = errors.New("missing field")
	ErrValidation   = errors.New("validation error")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken = errors.New("invalid token")
	ErrNoToken      = errors.New("no token provided")

	// Token lifecycle errors.
	ErrTokenExpired = errors.New("token expired")
)
