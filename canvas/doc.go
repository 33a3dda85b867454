// Package canvas is the user-facing surface: Canvas builds a graph
// through a chain of Var combinators, then drives validation,
// compilation, evaluation, solving, batch scenarios, and tracing over
// it. It is a thin front-end wiring graph, typecheck, compiler, vm,
// dirty, solver, batch, trace, and serialize together - it contains
// no algorithm of its own.
//
// Nodes are meant to be built inside an explicit canvas scope: call
// Enter before construction and Exit before execution begins
// (With does both around a closure with a guaranteed pop). Re-entering
// the same canvas appends to its graph rather than starting over.
//
// The scope stack is process-wide, mirroring the original system's
// ambient-canvas model; batch.Run workers never consult it; they are
// handed the graph, compiled program and baseline ledger as explicit
// arguments by RunBatch.
package canvas
