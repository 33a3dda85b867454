package topo

import (
	"fmt"

	"github.com/prismfinance/engine/graph"
)

// Sort computes a topological ordering of every node in g, considering
// only Value and DefaultValue edges. Temporal edges are severed: they
// cross a time boundary and a Previous node's dependency on its source
// is satisfied by execution order across time steps, not by
// instruction order within a single pass (see vm package). Constraint
// edges never participate here; they are assembled separately by the
// solver frontend. SolverVariable nodes have no parent edges and are
// therefore always roots.
//
// If g contains a cycle among Value/DefaultValue edges, ErrCycleDetected
// is returned: such a cycle has no solver closure available (solver
// variables are always leaves) and is a hard structural error.
func Sort(g *graph.Graph, opts ...Option) ([]graph.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	ids := g.AllNodeIDs()
	s := &sorter{
		graph: g,
		opts:  o,
		state: make(map[graph.NodeID]int, len(ids)),
		order: make([]graph.NodeID, 0, len(ids)),
	}
	for _, id := range ids {
		if s.state[id] == White {
			if err := s.visit(id); err != nil {
				return nil, err
			}
		}
	}
	// visit walks parent edges and appends a node only after all of its
	// parents, so the post-order is already ancestors-first.
	return s.order, nil
}

type sorter struct {
	graph *graph.Graph
	opts  options
	state map[graph.NodeID]int
	order []graph.NodeID
}

func (s *sorter) visit(id graph.NodeID) error {
	select {
	case <-s.opts.ctx.Done():
		return s.opts.ctx.Err()
	default:
	}

	if s.state[id] == Gray {
		return fmt.Errorf("topo: node %d: %w", id, ErrCycleDetected)
	}
	if s.state[id] == Black {
		return nil
	}
	s.state[id] = Gray

	edges, err := s.graph.Parents(id)
	if err != nil {
		return fmt.Errorf("topo: node %d: %w", id, err)
	}
	for _, e := range edges {
		if e.Kind == graph.Temporal {
			continue // severed: crosses a time boundary
		}
		if err := s.visit(e.From); err != nil {
			return err
		}
	}

	s.state[id] = Black
	s.order = append(s.order, id)
	return nil
}
