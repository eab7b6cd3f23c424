package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("not authenticated")
	ErrForbidden    = errors.New("access not allowed")
	ErrBadRequest   = errors.New("invalid request")
	ErrConflict     = errors.New("conflict")
	// ErrAlreadyExists is reported by storage on unique constraint violations.
	ErrAlreadyExists = errors.New("already exists")
)

var (
	ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	ErrEmailTaken         = fmt.Errorf("%w: email already registered", ErrForbidden)
)
