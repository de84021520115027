package domain

import "errors"

var (
	ErrNotFound           = errors.New("not found")
	ErrDuplicateIdentity  = errors.New("username or email already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidPartySize   = errors.New("party size must be at least 1")
	ErrValidation         = errors.New("validation failed")
)
