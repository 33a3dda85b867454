package canvas

import "errors"

var (
	// ErrNoCurrentCanvas reports that no canvas has been entered. No
	// function in this package returns it; Current reports an empty
	// scope stack with ok == false.
	ErrNoCurrentCanvas = errors.New("canvas: no current canvas; call Enter or use With")

	// ErrScopeMismatch is returned by Exit when it is called on a
	// canvas that is not the top of the scope stack.
	ErrScopeMismatch = errors.New("canvas: Exit called out of order with Enter")

	// ErrNotComputed is returned when GetValue, Recompute, Solve,
	// RunBatch, or Trace is called before ComputeAll has run once.
	ErrNotComputed = errors.New("canvas: ComputeAll has not run yet")

	// ErrCrossCanvas is returned when a Var combinator is given an
	// operand that belongs to a different Canvas.
	ErrCrossCanvas = errors.New("canvas: operands belong to different canvases")

	// ErrNotSolverVariable is returned when MustEqual is called on a
	// Var that is not a SolverVariable.
	ErrNotSolverVariable = errors.New("canvas: MustEqual receiver must be a solver variable")
)
