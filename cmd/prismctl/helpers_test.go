package main

import (
	"io"

	"github.com/rs/zerolog"
)

// testLogger returns a logger that discards everything, so tests can
// call run() without polluting test output.
func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}
