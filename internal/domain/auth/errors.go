package auth

import "errors"

var (
	ErrForbidden          = errors.New("not permitted for this viewer")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrDuplicateUsername  = errors.New("username already exists")
)
