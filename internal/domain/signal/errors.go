package signal

import "errors"

var (
	// ErrSignalNotFound signal does not exist
	ErrSignalNotFound = errors.New("signal not found")

	// ErrInvalidTarget target shape is not one of the known kinds
	ErrInvalidTarget = errors.New("invalid signal target")

	// ErrNoTriggers a signal must subscribe to at least one event type
	ErrNoTriggers = errors.New("signal has no triggers")
)
