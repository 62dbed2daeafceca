// Package common defines shared constants and sentinel errors used across
// profcli client layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Authentication errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrValidation         = errors.New("validation error")
	ErrSessionExpired     = errors.New("session expired")

	// Transport-level errors.
	ErrNetwork = errors.New("server unreachable")
	ErrServer  = errors.New("server error")

	// Internal flow-control errors.
	ErrLoginInProgress    = errors.New("login already in progress")
	ErrInvariantViolation = errors.New("session invariant violation")
)
