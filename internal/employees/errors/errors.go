package errors

import "errors"

var (
	ErrNotFound = errors.New("employee not found")

	ErrInvalidID = errors.New("invalid employee ID format")

	ErrShiftNotFound = errors.New("shift assignment not found")
)
