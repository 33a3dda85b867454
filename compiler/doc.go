// Package compiler lowers a graph.Graph into a bytecode.Program: it
// assigns every logical node a dense physical index and emits the
// linear instruction stream the vm walks once per time step.
//
// Layout is deterministic given an identical graph: constants (and
// solver variables, which are loaded as zero-seeded constants) are
// assigned physical indices first in ascending logical-id order, then
// every formula node (Binary, Previous) is assigned the next index in
// topo.Sort order. Determinism matters for recompile-for-recompile
// diffing of the emitted program.
package compiler
