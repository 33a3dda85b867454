package batch_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/batch"
	"github.com/prismfinance/engine/compiler"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/vm"
)

func TestRunScenariosAreIsolated(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{10, 10}, "A")
	b, _ := g.AddConstant([]float64{5, 5}, "B")
	sum, err := g.AddBinary(graph.OpAdd, a, b, "Sum")
	require.NoError(t, err)

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	scenarios := map[string]batch.Scenario{
		"high-a": {a: []float64{100, 100}},
		"low-a":  {a: []float64{1, 1}},
	}

	results := batch.Run(g, p, l, scenarios)
	require.Len(t, results, 2)

	sumPhys, _ := p.Physical(sum)

	high := results["high-a"]
	require.NoError(t, high.Err)
	highSum, err := high.Ledger.Column(sumPhys)
	require.NoError(t, err)
	require.Equal(t, []float64{105, 105}, highSum)

	low := results["low-a"]
	require.NoError(t, low.Err)
	lowSum, err := low.Ledger.Column(sumPhys)
	require.NoError(t, err)
	require.Equal(t, []float64{6, 6}, lowSum)

	baseSum, err := l.Column(sumPhys)
	require.NoError(t, err)
	require.Equal(t, []float64{15, 15}, baseSum, "baseline ledger must be untouched by scenario overrides")
}

func TestRunReportsUnknownOverrideTargetWithoutAbortingSiblings(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1, 2}, "A")

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	scenarios := map[string]batch.Scenario{
		"good": {a: []float64{9, 9}},
		"bad":  {graph.NodeID(999): []float64{1}},
	}

	results := batch.Run(g, p, l, scenarios)
	require.NoError(t, results["good"].Err)
	require.Error(t, results["bad"].Err)
	require.ErrorIs(t, results["bad"].Err, batch.ErrUnknownOverrideTarget)
}

func TestRunWithChunkSizeStillCompletesAllScenarios(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1, 1}, "A")

	p, err := compiler.Compile(g)
	require.NoError(t, err)
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	require.NoError(t, err)
	require.NoError(t, vm.Run(p, l))

	scenarios := map[string]batch.Scenario{}
	for i := 0; i < 10; i++ {
		scenarios[string(rune('a'+i))] = batch.Scenario{a: []float64{float64(i), float64(i)}}
	}

	results := batch.Run(g, p, l, scenarios, batch.WithChunkSize(2))
	require.Len(t, results, 10)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
}
