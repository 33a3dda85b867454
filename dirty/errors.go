package dirty

import "errors"

// ErrGraphNil is returned when Affected is given a nil graph.
var ErrGraphNil = errors.New("dirty: graph is nil")
