package ledger

import "errors"

var (
	// ErrInvalidShape indicates a non-positive physical count or horizon.
	ErrInvalidShape = errors.New("ledger: physical count and horizon must be > 0")

	// ErrIndexOutOfRange indicates a physical index or time step outside bounds.
	ErrIndexOutOfRange = errors.New("ledger: index out of range")
)
