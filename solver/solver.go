package solver

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/dirty"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/vm"
)

// residualTolerance bounds the L2 norm of the residual vector at the
// reported solution; above it, the outcome is reclassified Infeasible
// even if the underlying minimizer reports having converged (a
// constant, x-independent residual like x=x+10 has zero gradient
// everywhere and "converges" immediately without ever approaching a
// root).
const residualTolerance = 1e-6

// cancelConverger stops optimize.Minimize as soon as ctx is done,
// implementing the cooperative cancellation spec requires at the
// residual-oracle boundary.
type cancelConverger struct {
	ctx interface {
		Done() <-chan struct{}
	}
}

func (c *cancelConverger) Init(dim int) {}

func (c *cancelConverger) Converged(loc *optimize.Location) optimize.Status {
	select {
	case <-c.ctx.Done():
		return optimize.Failure
	default:
		return optimize.NotTerminated
	}
}

// Solve resolves every solver variable in g against its registered
// constraints, writing the result into l, and returns non-fatal
// warnings (unconstrained solver variables left at their default of
// 0) alongside a structured *Error on failure.
func Solve(g *graph.Graph, p *bytecode.Program, l *ledger.Ledger, opts ...Option) ([]string, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	constraints := g.Constraints()
	constrained := make(map[graph.NodeID]bool, len(constraints))
	for _, c := range constraints {
		constrained[c.Variable] = true
	}

	var warnings []string
	var activeVars []graph.NodeID
	for _, v := range g.SolverVariables() {
		if constrained[v] {
			activeVars = append(activeVars, v)
		} else {
			warnings = append(warnings, fmt.Sprintf("solver variable %d has no constraints; left at default 0", v))
		}
	}
	if len(activeVars) == 0 {
		return warnings, nil
	}

	H := p.Horizon
	varPhys := make([]int, len(activeVars))
	for i, v := range activeVars {
		phys, ok := p.Physical(v)
		if !ok {
			return warnings, fmt.Errorf("solver: variable %d has no physical index", v)
		}
		varPhys[i] = phys
	}

	activeConstraints := make([]graph.Constraint, 0, len(constraints))
	for _, c := range constraints {
		if constrained[c.Variable] {
			activeConstraints = append(activeConstraints, c)
		}
	}
	lhsPhys := make([]int, len(activeConstraints))
	rhsPhys := make([]int, len(activeConstraints))
	for i, c := range activeConstraints {
		lp, ok := p.Physical(c.LHS)
		if !ok {
			return warnings, fmt.Errorf("solver: constraint lhs %d has no physical index", c.LHS)
		}
		rp, ok := p.Physical(c.RHS)
		if !ok {
			return warnings, fmt.Errorf("solver: constraint rhs %d has no physical index", c.RHS)
		}
		lhsPhys[i] = lp
		rhsPhys[i] = rp
	}

	dirtyLogical, err := dirty.Affected(g, activeVars)
	if err != nil {
		return warnings, fmt.Errorf("solver: %w", err)
	}
	dirtyPhys := make([]int, 0, len(dirtyLogical))
	for _, id := range dirtyLogical {
		if phys, ok := p.Physical(id); ok {
			dirtyPhys = append(dirtyPhys, phys)
		}
	}

	residual := func(x []float64) []float64 {
		for i, phys := range varPhys {
			col := x[i*H : (i+1)*H]
			_ = l.WriteConstant(phys, col)
		}
		_ = vm.Recompute(p, l, dirtyPhys)

		r := make([]float64, len(activeConstraints)*H)
		for k := range activeConstraints {
			lhsCol, _ := l.Column(lhsPhys[k])
			rhsCol, _ := l.Column(rhsPhys[k])
			for t := 0; t < H; t++ {
				r[k*H+t] = lhsCol[t] - rhsCol[t]
			}
		}
		return r
	}

	jacobian := func(x []float64) *mat.Dense {
		n := len(x)
		base := residual(x)
		m := len(base)
		j := mat.NewDense(m, n, nil)
		xp := make([]float64, n)
		xm := make([]float64, n)
		for col := 0; col < n; col++ {
			copy(xp, x)
			copy(xm, x)
			h := math.Max(1e-8*math.Abs(x[col]), 1e-10)
			xp[col] += h
			xm[col] -= h
			rp := residual(xp)
			rm := residual(xm)
			for row := 0; row < m; row++ {
				j.Set(row, col, (rp[row]-rm[row])/(2*h))
			}
		}
		return j
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			r := residual(x)
			var sum float64
			for _, v := range r {
				sum += v * v
			}
			return 0.5 * sum
		},
		Grad: func(grad, x []float64) {
			r := residual(x)
			j := jacobian(x)
			rv := mat.NewVecDense(len(r), r)
			var gv mat.VecDense
			gv.MulVec(j.T(), rv)
			copy(grad, gv.RawVector().Data)
		},
	}

	x0 := make([]float64, len(activeVars)*H)
	settings := &optimize.Settings{
		Converger: &cancelConverger{ctx: o.ctx},
	}

	result, err := optimize.Minimize(problem, x0, settings, &optimize.BFGS{})
	if err != nil {
		if o.ctx.Err() != nil {
			return warnings, &Error{Status: Timeout, Message: o.ctx.Err().Error()}
		}
		return warnings, &Error{Status: Nonconvergent, Message: err.Error()}
	}

	finalR := residual(result.X)
	var normSq float64
	for _, v := range finalR {
		normSq += v * v
	}
	if math.Sqrt(normSq) > residualTolerance*math.Sqrt(float64(len(finalR))) {
		return warnings, &Error{
			Status:  Infeasible,
			Message: fmt.Sprintf("residual norm %.6g exceeds tolerance after solve (status %s)", math.Sqrt(normSq), result.Status),
		}
	}

	return warnings, nil
}
