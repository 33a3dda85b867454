package compiler

import "errors"

// ErrGraphNil is returned when Compile is given a nil graph.
var ErrGraphNil = errors.New("compiler: graph is nil")
