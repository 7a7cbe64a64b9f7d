package store

import "errors"

var (
	// ErrUserNotFound is returned when a username has no registered user
	ErrUserNotFound = errors.New("user not found")

	// ErrUserExists is returned when registering an already-taken username
	ErrUserExists = errors.New("username already exists")
)
