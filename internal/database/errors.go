package database

import "errors"

var (
	// ErrNotFound covers both unknown ids and ids that never reached the
	// store (locally-identified fallback records).
	ErrNotFound = errors.New("booking not found in store")

	ErrInvalidBooking = errors.New("booking failed validation")
)
