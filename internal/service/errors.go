package service

import "errors"

// Failure kinds shared by every service. Handlers translate these to HTTP
// statuses in one place; anything else surfaces as an internal error.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("resource already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrForbidden          = errors.New("not authorized to modify this resource")
)
