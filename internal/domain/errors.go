package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrUnauthorized indicates the bearer credential is missing, expired or
	// was rejected by the backend.
	ErrUnauthorized = errors.New("unauthorized")
)
