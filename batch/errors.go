package batch

import "errors"

// ErrUnknownOverrideTarget is returned when a scenario names a logical
// id that has no physical index in the compiled program.
var ErrUnknownOverrideTarget = errors.New("batch: override target has no physical index")
