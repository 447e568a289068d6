package repository

import "errors"

var (
	// ErrNotFound is returned when a lookup or user-scoped mutation matches no row.
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken is returned when creating a user with an email that already exists.
	ErrEmailTaken = errors.New("email already taken")
)
