package user

import "errors"

var (
	ErrNotFound       = errors.New("user not found")
	ErrEmailTaken     = errors.New("email is already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)
