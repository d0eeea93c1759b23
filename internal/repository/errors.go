package repository

import "errors"

var (
	// ErrNotFound is returned when no mission matches the requested key.
	ErrNotFound = errors.New("mission not found")

	// ErrDuplicateKey is returned by Create when a mission already exists
	// for the given date.
	ErrDuplicateKey = errors.New("mission already exists for this date")
)
