package errors

import "errors"

var (
	ErrNotFound = errors.New("booking not found")

	ErrInvalidID = errors.New("invalid booking ID format")

	// ErrStateChanged is returned when a compare-and-set update matched no
	// document because the booking moved on since the caller read it.
	ErrStateChanged = errors.New("booking state changed concurrently")

	ErrLockHeld = errors.New("booking lock already held")
)
