// Package common defines shared sentinel errors used across the client
// layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Transport-level errors.
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
	// ErrServerRejected covers any non-2xx response that is not an auth
	// failure. The record that triggered it stays pending.
	ErrServerRejected = errors.New("server rejected request")

	// Token errors.
	ErrInvalidToken = errors.New("invalid token")
)
