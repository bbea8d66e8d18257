package sighting

import "errors"

var (
	// ErrSightingNotFound sighting does not exist
	ErrSightingNotFound = errors.New("sighting not found")

	// ErrTypeNotFound sighting type does not exist
	ErrTypeNotFound = errors.New("sighting type not found")
)
