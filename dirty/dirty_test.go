package dirty_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/dirty"
	"github.com/prismfinance/engine/graph"
)

func TestAffectedIncludesChangedNodeItself(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")

	affected, err := dirty.Affected(g, []graph.NodeID{a})
	require.NoError(t, err)
	require.Equal(t, []graph.NodeID{a}, affected)
}

func TestAffectedFollowsValueEdgesForward(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")
	b, _ := g.AddConstant([]float64{2}, "B")
	sum, err := g.AddBinary(graph.OpAdd, a, b, "Sum")
	require.NoError(t, err)
	doubled, err := g.AddBinary(graph.OpMul, sum, a, "Doubled")
	require.NoError(t, err)

	affected, err := dirty.Affected(g, []graph.NodeID{a})
	require.NoError(t, err)
	require.ElementsMatch(t, []graph.NodeID{a, sum, doubled}, affected)
	require.NotContains(t, affected, b)
}

func TestAffectedFollowsTemporalEdgesForwardUnlikeTopoSort(t *testing.T) {
	g := graph.NewGraph()
	source, _ := g.AddConstant([]float64{10}, "Source")
	def, _ := g.AddConstant([]float64{0}, "Default")
	prev, err := g.AddPrevious(source, def, 1, "Source.prev")
	require.NoError(t, err)
	downstream, err := g.AddBinary(graph.OpAdd, prev, def, "Downstream")
	require.NoError(t, err)

	affected, err := dirty.Affected(g, []graph.NodeID{source})
	require.NoError(t, err)
	require.ElementsMatch(t, []graph.NodeID{source, prev, downstream}, affected)
}

func TestAffectedRejectsNilGraph(t *testing.T) {
	_, err := dirty.Affected(nil, nil)
	require.ErrorIs(t, err, dirty.ErrGraphNil)
}
