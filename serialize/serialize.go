package serialize

import (
	"encoding/gob"
	"fmt"
	"io"

	"github.com/prismfinance/engine/graph"
)

// nodeRecord is the wire form of a single logical node. Exactly the
// kind-specific fields for n.Kind are meaningful, mirroring
// graph.node's own one-kind-at-a-time layout.
type nodeRecord struct {
	Kind graph.NodeKind
	Name string

	// KindConstant
	Values []float64

	// KindBinary
	Op       graph.BinaryOp
	LHS, RHS graph.NodeID

	// KindPrevious
	Source, Def graph.NodeID
	Lag         int

	// metadata, any kind
	Unit     string
	HasUnit  bool
	Temporal graph.TemporalType
}

// constraintRecord is the wire form of a graph.Constraint.
type constraintRecord struct {
	Variable, LHS, RHS graph.NodeID
}

// snapshot is the full wire form of a graph's structural state. It
// never carries compiled bytecode: a decoded graph must be recompiled
// before first evaluation.
type snapshot struct {
	Horizon     int
	Nodes       []nodeRecord
	Constraints []constraintRecord
}

// Encode writes g's nodes, metadata, and constraints to w as gob.
func Encode(w io.Writer, g *graph.Graph) error {
	snap := snapshot{Horizon: g.Horizon()}

	for _, id := range g.AllNodeIDs() {
		kind, err := g.Kind(id)
		if err != nil {
			return err
		}
		name, err := g.Name(id)
		if err != nil {
			return err
		}
		meta, err := g.Metadata(id)
		if err != nil {
			return err
		}
		rec := nodeRecord{
			Kind:     kind,
			Name:     name,
			Unit:     meta.Unit,
			HasUnit:  meta.HasUnit,
			Temporal: meta.TemporalType,
		}

		switch kind {
		case graph.KindConstant:
			values, err := g.ConstantValues(id)
			if err != nil {
				return err
			}
			rec.Values = values
		case graph.KindBinary:
			op, lhs, rhs, err := g.Binary(id)
			if err != nil {
				return err
			}
			rec.Op, rec.LHS, rec.RHS = op, lhs, rhs
		case graph.KindPrevious:
			source, def, lag, err := g.Previous(id)
			if err != nil {
				return err
			}
			rec.Source, rec.Def, rec.Lag = source, def, lag
		case graph.KindSolverVariable:
			// no kind-specific fields
		default:
			return fmt.Errorf("serialize: node %d: unhandled kind %s", id, kind)
		}

		snap.Nodes = append(snap.Nodes, rec)
	}

	for _, c := range g.Constraints() {
		snap.Constraints = append(snap.Constraints, constraintRecord{Variable: c.Variable, LHS: c.LHS, RHS: c.RHS})
	}

	return gob.NewEncoder(w).Encode(snap)
}

// Decode reads a stream produced by Encode and rebuilds an equivalent
// graph.Graph. Logical ids are preserved because nodes are replayed
// through the same constructors in the same order they were
// originally added, and graph.Graph assigns ids by append order.
//
// The returned graph has no compiled bytecode; callers must run it
// through compiler.Compile before evaluating it.
func Decode(r io.Reader) (*graph.Graph, error) {
	var snap snapshot
	if err := gob.NewDecoder(r).Decode(&snap); err != nil {
		return nil, err
	}

	g := graph.NewGraph()

	for i, rec := range snap.Nodes {
		var id graph.NodeID
		var err error

		switch rec.Kind {
		case graph.KindConstant:
			id, err = g.AddConstant(rec.Values, rec.Name)
		case graph.KindBinary:
			id, err = g.AddBinary(rec.Op, rec.LHS, rec.RHS, rec.Name)
		case graph.KindPrevious:
			id, err = g.AddPrevious(rec.Source, rec.Def, rec.Lag, rec.Name)
		case graph.KindSolverVariable:
			id = g.AddSolverVariable(rec.Name)
		default:
			return nil, fmt.Errorf("serialize: record %d: unhandled kind %s", i, rec.Kind)
		}
		if err != nil {
			return nil, fmt.Errorf("serialize: replaying node %d (%s): %w", i, rec.Name, err)
		}

		if rec.HasUnit || rec.Temporal != graph.TemporalUnknown {
			if _, _, _, err := g.SetMetadata(id, rec.Unit, rec.HasUnit, rec.Temporal); err != nil {
				return nil, err
			}
		}
	}

	for _, c := range snap.Constraints {
		if err := g.AddConstraint(c.Variable, c.LHS, c.RHS); err != nil {
			return nil, fmt.Errorf("serialize: replaying constraint on variable %d: %w", c.Variable, err)
		}
	}

	if len(g.Constraints()) != len(snap.Constraints) {
		return nil, ErrConstraintsDropped
	}

	return g, nil
}
