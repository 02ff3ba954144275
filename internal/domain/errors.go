package domain

import "errors"

// Sentinel errors shared across services. Controllers map these to HTTP
// statuses and user-facing messages with errors.Is.
var (
	ErrNotFound      = errors.New("not found")
	ErrForbidden     = errors.New("forbidden")
	ErrInvalidInput  = errors.New("invalid input")
	ErrInvalidEmail  = errors.New("invalid email")
	ErrInvalidAnswer = errors.New("invalid answer")
)
