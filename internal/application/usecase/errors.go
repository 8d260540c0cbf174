package usecase

import "errors"

// Sentinel errors shared by the use cases. Presentation layers map these
// to transport status codes with errors.Is.
var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("forbidden")
	ErrLastAdmin          = errors.New("cannot remove the last admin account")
	ErrSelfDeletion       = errors.New("cannot delete your own account")
)
