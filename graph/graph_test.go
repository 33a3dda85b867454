package graph_test

import (
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/prismfinance/engine/graph"
)

func TestAddConstantAssignsMonotonicIDs(t *testing.T) {
	g := graph.NewGraph()
	a, err := g.AddConstant([]float64{10}, "A")
	require.NoError(t, err)
	b, err := g.AddConstant([]float64{20}, "B")
	require.NoError(t, err)
	require.Equal(t, graph.NodeID(1), a)
	require.Equal(t, graph.NodeID(2), b)
	require.Equal(t, 2, g.NodeCount())
}

func TestAddConstantRejectsEmptyVector(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddConstant(nil, "Empty")
	require.ErrorIs(t, err, graph.ErrEmptyConstant)
}

func TestHorizonMismatchIsStructuralError(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.AddConstant([]float64{1, 2, 3}, "V1")
	require.NoError(t, err)
	require.Equal(t, 3, g.Horizon())

	_, err = g.AddConstant([]float64{1, 2}, "V2")
	require.ErrorIs(t, err, graph.ErrBadHorizon)

	// Scalars always broadcast regardless of horizon.
	_, err = g.AddConstant([]float64{5}, "Scalar")
	require.NoError(t, err)
}

func TestAddBinaryValidatesParents(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")
	_, err := g.AddBinary(graph.OpAdd, a, graph.NodeID(999), "bad")
	require.ErrorIs(t, err, graph.ErrBadParent)

	b, _ := g.AddConstant([]float64{2}, "B")
	c, err := g.AddBinary(graph.OpAdd, a, b, "A+B")
	require.NoError(t, err)

	op, lhs, rhs, err := g.Binary(c)
	require.NoError(t, err)
	require.Equal(t, graph.OpAdd, op)
	require.Equal(t, a, lhs)
	require.Equal(t, b, rhs)
}

func TestAddPreviousRejectsBadLag(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")
	d, _ := g.AddConstant([]float64{0}, "D")
	_, err := g.AddPrevious(a, d, 0, "A.prev")
	require.ErrorIs(t, err, graph.ErrBadLag)
}

func TestPreviousEmitsExactlyOneTemporalAndOneDefaultEdge(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")
	d, _ := g.AddConstant([]float64{0}, "D")
	p, err := g.AddPrevious(a, d, 1, "A.prev")
	require.NoError(t, err)

	edges, err := g.Parents(p)
	require.NoError(t, err)
	require.Len(t, edges, 2)

	var sawTemporal, sawDefault int
	for _, e := range edges {
		switch e.Kind {
		case graph.Temporal:
			sawTemporal++
			require.Equal(t, a, e.From)
		case graph.DefaultValue:
			sawDefault++
			require.Equal(t, d, e.From)
		default:
			t.Fatalf("unexpected edge kind %v", e.Kind)
		}
	}
	require.Equal(t, 1, sawTemporal)
	require.Equal(t, 1, sawDefault)
}

func TestConstraintRequiresSolverVariable(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")
	b, _ := g.AddConstant([]float64{2}, "B")
	err := g.AddConstraint(a, a, b)
	require.ErrorIs(t, err, graph.ErrWrongKind)

	sv := g.AddSolverVariable("X")
	require.NoError(t, g.AddConstraint(sv, a, b))
	require.Len(t, g.ConstraintsFor(sv), 1)
}

func TestSetMetadataReturnsPreviousValueForOverwriteDetection(t *testing.T) {
	g := graph.NewGraph()
	a, _ := g.AddConstant([]float64{1}, "A")

	prevUnit, hadUnit, prevTemporal, err := g.SetMetadata(a, "USD", true, graph.Flow)
	require.NoError(t, err)
	require.False(t, hadUnit)
	require.Equal(t, "", prevUnit)
	require.Equal(t, graph.TemporalUnknown, prevTemporal)

	prevUnit, hadUnit, prevTemporal, err = g.SetMetadata(a, "EUR", true, graph.TemporalUnknown)
	require.NoError(t, err)
	require.True(t, hadUnit)
	require.Equal(t, "USD", prevUnit)
	require.Equal(t, graph.Flow, prevTemporal)
}

func TestNodeNotFoundIsSentinel(t *testing.T) {
	g := graph.NewGraph()
	_, err := g.Kind(graph.NodeID(42))
	require.True(t, errors.Is(err, graph.ErrNodeNotFound))
}

// TestConcurrentAddConstant mirrors the concurrency guarantees the
// wider codebase expects from its registries: concurrent appends must
// not race or drop nodes.
func TestConcurrentAddConstant(t *testing.T) {
	g := graph.NewGraph()
	const num = 200
	var wg sync.WaitGroup
	wg.Add(num)
	for i := 0; i < num; i++ {
		go func(i int) {
			defer wg.Done()
			_, err := g.AddConstant([]float64{float64(i)}, "V")
			require.NoError(t, err)
		}(i)
	}
	wg.Wait()
	require.Equal(t, num, g.NodeCount())
}
