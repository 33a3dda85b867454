package compiler

import (
	"fmt"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/topo"
)

// Compile lowers g into a bytecode.Program. It fails if g is nil and
// propagates any topo.ErrCycleDetected from the underlying sort. A
// graph that has never seen a multi-element constant compiles with
// Horizon 1.
func Compile(g *graph.Graph) (*bytecode.Program, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	// A graph built entirely from scalar constants never sees a
	// multi-element vector, so Horizon() reports 0; such a graph is a
	// legitimate single-period model, so it compiles with H=1.
	h := g.Horizon()
	if h == 0 {
		h = 1
	}

	order, err := topo.Sort(g)
	if err != nil {
		return nil, fmt.Errorf("compiler: %w", err)
	}

	p := &bytecode.Program{
		Horizon:           h,
		LogicalToPhysical: make(map[graph.NodeID]int, len(order)),
	}

	assign := func(id graph.NodeID) int {
		phys := len(p.PhysicalToLogical)
		p.LogicalToPhysical[id] = phys
		p.PhysicalToLogical = append(p.PhysicalToLogical, id)
		return phys
	}

	// Phase 1: constants and solver variables get the lowest physical
	// indices, in ascending logical-id order, so that a recompile of
	// an unchanged graph prefix yields unchanged physical indices for
	// its inputs even if formula nodes are later added.
	for _, id := range g.AllNodeIDs() {
		kind, err := g.Kind(id)
		if err != nil {
			return nil, fmt.Errorf("compiler: node %d: %w", id, err)
		}
		switch kind {
		case graph.KindConstant:
			values, err := g.ConstantValues(id)
			if err != nil {
				return nil, fmt.Errorf("compiler: node %d: %w", id, err)
			}
			phys := assign(id)
			p.Constants = append(p.Constants, bytecode.ConstantLoad{Phys: phys, Values: values})
		case graph.KindSolverVariable:
			phys := assign(id)
			p.Constants = append(p.Constants, bytecode.ConstantLoad{Phys: phys, Values: []float64{0}})
			p.SolverVariables = append(p.SolverVariables, phys)
		}
	}

	// Phase 2: formula nodes (Binary, Previous) in topological order.
	for _, id := range order {
		kind, err := g.Kind(id)
		if err != nil {
			return nil, fmt.Errorf("compiler: node %d: %w", id, err)
		}

		switch kind {
		case graph.KindBinary:
			op, lhs, rhs, err := g.Binary(id)
			if err != nil {
				return nil, fmt.Errorf("compiler: node %d: %w", id, err)
			}
			out := assign(id)
			p.Instructions = append(p.Instructions, bytecode.Instruction{
				Kind: bytecode.FromBinaryOp(op),
				Out:  out,
				A:    p.LogicalToPhysical[lhs],
				B:    p.LogicalToPhysical[rhs],
			})
		case graph.KindPrevious:
			source, def, lag, err := g.Previous(id)
			if err != nil {
				return nil, fmt.Errorf("compiler: node %d: %w", id, err)
			}
			out := assign(id)
			p.Instructions = append(p.Instructions, bytecode.Instruction{
				Kind: bytecode.OpPrevious,
				Out:  out,
				A:    p.LogicalToPhysical[source],
				B:    p.LogicalToPhysical[def],
				Lag:  lag,
			})
		case graph.KindConstant, graph.KindSolverVariable:
			// already assigned in phase 1.
		default:
			return nil, fmt.Errorf("compiler: node %d: unhandled kind %v", id, kind)
		}
	}

	p.PhysicalCount = len(p.PhysicalToLogical)
	return p, nil
}
