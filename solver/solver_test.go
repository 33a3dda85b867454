package solver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/compiler"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/solver"
	"github.com/prismfinance/engine/vm"
)

func TestSolveCircularFinancingFee(t *testing.T) {
	g := graph.NewGraph()
	cost, _ := g.AddConstant([]float64{1000}, "ProjectCost")
	rate, _ := g.AddConstant([]float64{0.02}, "FeeRate")

	totalFunds := g.AddSolverVariable("TotalFunds")
	financingFee := g.AddSolverVariable("FinancingFee")

	rhs1, err := g.AddBinary(graph.OpAdd, cost, financingFee, "Cost+Fee")
	require.NoError(t, err)
	require.NoError(t, g.AddConstraint(totalFunds, totalFunds, rhs1))

	rhs2, err := g.AddBinary(graph.OpMul, totalFunds, rate, "Funds*Rate")
	require.NoError(t, err)
	require.NoError(t, g.AddConstraint(financingFee, financingFee, rhs2))

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	warnings, err := solver.Solve(g, p, l)
	require.NoError(t, err)
	require.Empty(t, warnings)

	feePhys, _ := p.Physical(financingFee)
	fundsPhys, _ := p.Physical(totalFunds)
	fee, err := l.At(feePhys, 0)
	require.NoError(t, err)
	funds, err := l.At(fundsPhys, 0)
	require.NoError(t, err)

	expectedFee := 1000.0 * 0.02 / (1 - 0.02)
	require.InDelta(t, expectedFee, fee, 1e-5)
	require.InDelta(t, 1000.0+expectedFee, funds, 1e-5)
}

func TestSolveNonlinearQuadratic(t *testing.T) {
	// x^2 = x + 20, roots at x = 5 and x = -4.
	g := graph.NewGraph()
	twenty, _ := g.AddConstant([]float64{20}, "Twenty")
	x := g.AddSolverVariable("x")

	xsq, err := g.AddBinary(graph.OpMul, x, x, "x*x")
	require.NoError(t, err)
	xplus20, err := g.AddBinary(graph.OpAdd, x, twenty, "x+20")
	require.NoError(t, err)
	require.NoError(t, g.AddConstraint(x, xsq, xplus20))

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	_, err = solver.Solve(g, p, l)
	require.NoError(t, err)

	xPhys, _ := p.Physical(x)
	got, err := l.At(xPhys, 0)
	require.NoError(t, err)
	require.InDelta(t, 0.0, got*got-got-20, 1e-6)
}

func TestSolveInfeasibleSurfacesStructuredError(t *testing.T) {
	// x = x + 10 has no solution: residual is the constant -10.
	g := graph.NewGraph()
	ten, _ := g.AddConstant([]float64{10}, "Ten")
	x := g.AddSolverVariable("x")
	rhs, err := g.AddBinary(graph.OpAdd, x, ten, "x+10")
	require.NoError(t, err)
	require.NoError(t, g.AddConstraint(x, x, rhs))

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	_, err = solver.Solve(g, p, l)
	require.Error(t, err)
	var sErr *solver.Error
	require.ErrorAs(t, err, &sErr)
	require.Equal(t, solver.Infeasible, sErr.Status)
}

func TestSolveWarnsOnUnconstrainedVariable(t *testing.T) {
	g := graph.NewGraph()
	g.AddConstant([]float64{1}, "unused-horizon-setter")
	v := g.AddSolverVariable("orphan")

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)

	warnings, err := solver.Solve(g, p, l)
	require.NoError(t, err)
	require.Len(t, warnings, 1)
	require.Contains(t, warnings[0], "no constraints")

	phys, _ := p.Physical(v)
	val, err := l.At(phys, 0)
	require.NoError(t, err)
	require.Equal(t, 0.0, val)
}
