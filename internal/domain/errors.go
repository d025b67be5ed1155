package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Infrastructure wraps these so the application layer can branch on the
// failure class without leaking store details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrBadRequest   = errors.New("bad request")
)
