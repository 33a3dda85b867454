// Package solver lowers a graph's Constraint set into a residual
// vector and bridges it to an external nonlinear root-finder.
//
// The unknown vector x is the flattened concatenation of every solver
// variable that carries at least one constraint, var-major then
// time-major: x[i*H+t] is the t'th-period value of the i'th such
// variable, in graph.SolverVariables order. A variable with zero
// constraints is left at its default value of 0 and is reported back
// as a warning rather than included in x (invariant 3).
//
// The oracle the root-finder drives is exactly the one spec describes:
// f(x) writes x back into the solver-variable ledger columns, runs
// the VM over the forward-reachable subgraph of those columns, and
// reads the constraint residuals back out. Root-finding is recast as
// minimizing the sum of squared residuals, matching the equivalence
// the spec calls out explicitly (root-finding of r=0 is minimization
// of ½‖r‖² with zero target); gonum.org/v1/gonum/optimize is the
// pluggable external solver this package treats as a black box, and
// gonum.org/v1/gonum/mat backs the Jacobian-to-gradient algebra.
//
// The Jacobian is computed by hand with a central-difference formula
// using a per-element step h_i = max(1e-8*|x_i|, 1e-10), exactly as
// specified; gonum's diff/fd package was not used for this because
// its Settings expose only a single global step, not a per-element
// one.
package solver
