// Package common defines sentinel errors and small helpers shared by the
// friendgraph client and server. Callers should use errors.Is to match the
// sentinels; producers wrap them with fmt.Errorf("...: %w", err).
package common

import "errors"

var (
	// lookup errors
	ErrNotFound = errors.New("not found")

	// request validation errors
	ErrValidation       = errors.New("validation error")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrUnknownType      = errors.New("unknown type")

	// auth errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already exists")
)
