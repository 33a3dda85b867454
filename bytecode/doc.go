// Package bytecode defines the compiled, linear representation the
// compiler emits and the vm interprets: a flat array of physical
// indices in place of graph.NodeID pointer-chasing, plus the
// instruction stream that walks them.
//
// Physical indices are dense, zero-based, and assigned by the
// compiler in the order it chooses (constants first, then formulas in
// topological order); they are not stable across recompiles and exist
// purely as an execution-time optimization, the same role matrix's
// flat row-major indexing plays for dense linear algebra in this
// codebase.
package bytecode
