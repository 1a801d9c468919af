package apperr

import "errors"

// Sentinel errors shared across services and translated to HTTP
// status codes at the handler layer.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTooManyAttempts    = errors.New("too many login attempts")
	ErrEmailTaken         = errors.New("email already in use")
	ErrAlreadyCheckedIn   = errors.New("already checked in today")
	ErrNotFound           = errors.New("not found")
	ErrInvalidRole        = errors.New("invalid role")
)
