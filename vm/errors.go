package vm

import "errors"

var (
	// ErrProgramNil is returned when Run or Recompute is given a nil program.
	ErrProgramNil = errors.New("vm: program is nil")

	// ErrLedgerNil is returned when Run or Recompute is given a nil ledger.
	ErrLedgerNil = errors.New("vm: ledger is nil")

	// ErrShapeMismatch is returned when the ledger's shape does not
	// match the program's declared physical count and horizon.
	ErrShapeMismatch = errors.New("vm: ledger shape does not match program")
)
