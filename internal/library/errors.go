package library

import "errors"

// Sentinel errors for store operations. Anything else coming out of the
// store is a wrapped filesystem error.
var (
	ErrInvalidName   = errors.New("invalid name")
	ErrAlreadyExists = errors.New("already exists")
	ErrNotFound      = errors.New("not found")
)
