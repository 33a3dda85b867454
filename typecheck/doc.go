// Package typecheck implements the two-phase unit and temporal-type
// validator: bottom-up inference over every formula node, followed by
// verification against any explicitly declared metadata.
//
// Results are cached per node and invalidated whenever metadata on any
// node changes: the inferred type of a constant or solver variable is
// its declared metadata, so a declaration on one node can change both
// the inference and the verification outcome of every descendant.
package typecheck
