package repository

import "errors"

// Sentinel kinds for store errors.
var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	// ErrUnavailable marks a backend failure (timeout, lost connection),
	// distinct from domain outcomes so callers can decide to retry.
	ErrUnavailable = errors.New("record store unavailable")
)
