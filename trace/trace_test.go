package trace_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/compiler"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/trace"
	"github.com/prismfinance/engine/vm"
)

func TestRenderListsAncestorsBeforeTheTracedNode(t *testing.T) {
	g := graph.NewGraph()
	revenue, _ := g.AddConstant([]float64{100}, "Revenue")
	margin, _ := g.AddConstant([]float64{0.4}, "COGS_Margin")
	cogs, err := g.AddBinary(graph.OpMul, revenue, margin, "COGS")
	require.NoError(t, err)
	grossProfit, err := g.AddBinary(graph.OpSub, revenue, cogs, "Gross_Profit")
	require.NoError(t, err)

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	out, err := trace.Render(g, p, l, grossProfit)
	require.NoError(t, err)
	require.Contains(t, out, "Revenue")
	require.Contains(t, out, "COGS_Margin")
	require.Contains(t, out, "COGS")
	require.Contains(t, out, "Gross_Profit")
	require.Contains(t, out, "60")
	require.Less(t, strings.Index(out, "Revenue"), strings.Index(out, "Gross_Profit"))
}

func TestRenderOnAnInputShowsOnlyItself(t *testing.T) {
	g := graph.NewGraph()
	revenue, _ := g.AddConstant([]float64{100, 110}, "Revenue")

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	out, err := trace.Render(g, p, l, revenue)
	require.NoError(t, err)
	require.Contains(t, out, "Revenue")
	require.Contains(t, out, "[100, 110]")
}

func TestRenderRejectsUnknownPhysicalIndex(t *testing.T) {
	g := graph.NewGraph()
	g.AddConstant([]float64{1, 2}, "A")
	stale, err := compiler.Compile(g)
	require.NoError(t, err)

	orphan := g.AddSolverVariable("orphan-added-after-compile")
	l, err := ledger.New(stale.PhysicalCount, stale.Horizon)
	require.NoError(t, err)

	_, err = trace.Render(g, stale, l, orphan)
	require.ErrorIs(t, err, trace.ErrNoPhysicalIndex)
}
