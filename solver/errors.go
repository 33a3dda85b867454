package solver

import "fmt"

// Status classifies why a solve did not produce an accepted solution.
type Status int

const (
	// Nonconvergent means the underlying method ran to its iteration
	// or evaluation limit without meeting the residual tolerance.
	Nonconvergent Status = iota + 1
	// Infeasible means the method reported a stopping point whose
	// residual norm remains well above tolerance - no nearby root.
	Infeasible
	// Timeout means the solve was cancelled via context before
	// converging.
	Timeout
	// SingularJacobian means the finite-difference Jacobian was
	// numerically singular and no search direction could be formed.
	SingularJacobian
)

// String renders the status for diagnostics.
func (s Status) String() string {
	switch s {
	case Nonconvergent:
		return "Nonconvergent"
	case Infeasible:
		return "Infeasible"
	case Timeout:
		return "Timeout"
	case SingularJacobian:
		return "SingularJacobian"
	default:
		return "Unknown"
	}
}

// Error is the structured failure surfaced by Solve. The solver
// frontend never panics on infeasibility; every nonconvergent or
// cancelled outcome becomes one of these.
type Error struct {
	Status  Status
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("solver: %s: %s", e.Status, e.Message)
}
