package graph

import "errors"

// Sentinel errors for graph construction and lookup. Callers branch on
// these with errors.Is; never on the message text.
var (
	// ErrNodeNotFound indicates an operation referenced a non-existent
	// logical id.
	ErrNodeNotFound = errors.New("graph: node not found")

	// ErrNilGraph indicates a nil *Graph receiver was used.
	ErrNilGraph = errors.New("graph: graph is nil")

	// ErrBadParent indicates a parent id does not exist in the graph.
	ErrBadParent = errors.New("graph: parent node not found")

	// ErrWrongKind indicates an operation was attempted against a node
	// of the wrong Kind (e.g. AddConstraint against a non-SolverVariable).
	ErrWrongKind = errors.New("graph: wrong node kind for operation")

	// ErrBadHorizon indicates a constant's value vector length conflicts
	// with a horizon already observed for another constant (length > 1
	// and different).
	ErrBadHorizon = errors.New("graph: incompatible horizon length")

	// ErrBadLag indicates a Previous node was constructed with lag < 1.
	ErrBadLag = errors.New("graph: lag must be >= 1")

	// ErrEmptyConstant indicates a constant was declared with zero values.
	ErrEmptyConstant = errors.New("graph: constant must have at least one value")

	// ErrSelfParent indicates a node was declared as its own parent.
	ErrSelfParent = errors.New("graph: node cannot depend on itself")
)
