package trace

import "errors"

// ErrNoPhysicalIndex is returned when a traced node was never assigned
// a physical index by the compiler (a stale program from before the
// node existed).
var ErrNoPhysicalIndex = errors.New("trace: node has no physical index in program")
