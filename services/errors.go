package services

import "errors"

// Sentinel errors shared by all services. Handlers translate them to HTTP
// status codes with errors.Is; anything unrecognized becomes a 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrStorageUnavailable marks the degraded-storage path. It is an
	// expected condition, never an unhandled fault.
	ErrStorageUnavailable = errors.New("object storage unavailable")
)
