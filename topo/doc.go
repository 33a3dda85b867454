// Package topo computes a deterministic topological ordering of a
// canvas's graph and detects structural cycles.
//
// Complexity:
//
//   - Time:   O(V + E)
//   - Memory: O(V) for recursion state and the output order.
package topo
