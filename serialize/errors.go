package serialize

import "errors"

// ErrConstraintsDropped is returned when a decode produces fewer
// constraints than the stream declared - the historical bug this
// package exists to guard against.
var ErrConstraintsDropped = errors.New("serialize: decoded graph is missing constraints present in the stream")
