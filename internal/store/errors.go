package store

import "errors"

var (
	// ErrNotFound means the addressed row does not exist (or does not
	// exist within the requested parent scope).
	ErrNotFound = errors.New("not found")

	// ErrNotOwner means the row exists but belongs to another user.
	ErrNotOwner = errors.New("not the owner")

	// ErrDuplicate means a uniqueness constraint rejected the insert:
	// an already-registered deler, or an already-taken email address.
	ErrDuplicate = errors.New("already exists")
)
