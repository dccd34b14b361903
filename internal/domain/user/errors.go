package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrPseudoAlreadyTaken = errors.New("pseudo already taken")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
