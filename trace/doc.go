// Package trace renders a human-readable audit trail for a node: the
// node itself and every ancestor that feeds it, one row per node,
// each row showing the node's name, kind, and full per-period value
// column.
//
// Pure formatter: it is given a graph, a compiled program (for the
// logical-to-physical lookup), and a ledger, and returns text. It
// does not mutate any of its inputs and has no opinion on where the
// result is printed.
package trace
