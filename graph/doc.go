// Package graph is the node/edge registry of a canvas: a directed
// graph of time-indexed numeric variables, identified by monotonically
// assigned logical ids.
//
// Under the hood, Graph keeps one record per logical id (kind,
// parents, metadata) behind a pair of RWMutex locks, following the
// same separate-lock-per-concern discipline used throughout this
// codebase: one lock guards node storage, including metadata, the
// other guards the horizon and the constraint list.
//
// Graph enforces structural invariants eagerly at construction time
// (a Previous node always has exactly one Temporal and one
// DefaultValue edge) but defers cycle detection to compile time, so
// that solver constraints may be declared in any order.
package graph
