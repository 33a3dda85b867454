// Package dirty computes the forward-reachable closure of a set of
// changed nodes: every node whose value could change as a result,
// directly or transitively.
//
// Unlike topo.Sort, which severs Temporal edges because they must not
// participate in acyclicity analysis, dirty tracking follows Temporal
// edges forward without exception: if a Previous node's source
// changes, every downstream consumer of that Previous node is
// affected too, the same as any other dependency. The two traversals
// answer different questions over the same edge set and are not
// interchangeable.
//
// The traversal itself is a plain breadth-first frontier walk over
// forward (child) adjacency, built by inverting graph.Parents across
// every node once per call.
package dirty
