package graph

import (
	"fmt"
	"sync"
)

// Graph is the node/edge registry for a single canvas. Nodes and their
// metadata are guarded by muNodes; the horizon and constraint list are
// guarded by muMeta. The two locks are kept separate so that
// constraint registration and horizon checks do not contend with node
// storage, mirroring the lock-per-concern split this codebase uses
// throughout its data structures. Metadata mutation (declare_type)
// takes muNodes and so does serialize with node construction.
type Graph struct {
	muNodes sync.RWMutex
	nodes   []*node // indexed by NodeID - 1

	muMeta      sync.RWMutex
	horizon     int // 0 until the first multi-element constant is seen
	constraints []Constraint
}

// NewGraph returns an empty Graph ready for node construction.
func NewGraph() *Graph {
	return &Graph{}
}

// NodeCount returns the number of nodes registered so far.
func (g *Graph) NodeCount() int {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	return len(g.nodes)
}

// Horizon returns the declared horizon length H: the maximum constant
// vector length observed so far, or 0 if every constant seen so far is
// scalar.
func (g *Graph) Horizon() int {
	g.muMeta.RLock()
	defer g.muMeta.RUnlock()
	return g.horizon
}

func (g *Graph) append(n *node) NodeID {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	n.id = NodeID(len(g.nodes) + 1)
	g.nodes = append(g.nodes, n)
	return n.id
}

// nodeLocked returns the node for id without acquiring a lock; callers
// must hold at least muNodes.RLock().
func (g *Graph) nodeLocked(id NodeID) (*node, error) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(g.nodes) {
		return nil, fmt.Errorf("graph: id %d: %w", id, ErrNodeNotFound)
	}
	return g.nodes[idx], nil
}

// Kind returns the NodeKind of id.
func (g *Graph) Kind(id NodeID) (NodeKind, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, err := g.nodeLocked(id)
	if err != nil {
		return 0, err
	}
	return n.kind, nil
}

// Name returns the user-facing label of id. Names are not identifiers
// and carry no semantic weight beyond diagnostics.
func (g *Graph) Name(id NodeID) (string, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, err := g.nodeLocked(id)
	if err != nil {
		return "", err
	}
	return n.name, nil
}

// checkHorizon validates a candidate value-vector length against the
// horizon observed so far, updating it if this is the first
// multi-element vector seen. Structural error if a second, different
// multi-element length is observed (spec: "Input mismatch between two
// declared horizons (>1 and != H) is a structural error").
func (g *Graph) checkHorizon(n int) error {
	g.muMeta.Lock()
	defer g.muMeta.Unlock()
	if n <= 1 {
		return nil
	}
	if g.horizon == 0 {
		g.horizon = n
		return nil
	}
	if g.horizon != n {
		return fmt.Errorf("graph: vector length %d conflicts with horizon %d: %w", n, g.horizon, ErrBadHorizon)
	}
	return nil
}

// AddConstant registers a new Constant node. values may be a single
// scalar or a vector of horizon length H; it must be non-empty.
func (g *Graph) AddConstant(values []float64, name string) (NodeID, error) {
	if len(values) == 0 {
		return 0, ErrEmptyConstant
	}
	if err := g.checkHorizon(len(values)); err != nil {
		return 0, err
	}
	cp := make([]float64, len(values))
	copy(cp, values)
	return g.append(&node{kind: KindConstant, name: name, values: cp}), nil
}

// AddBinary registers a new Binary(op, lhs, rhs) formula node.
func (g *Graph) AddBinary(op BinaryOp, lhs, rhs NodeID, name string) (NodeID, error) {
	g.muNodes.RLock()
	_, errL := g.nodeLocked(lhs)
	_, errR := g.nodeLocked(rhs)
	g.muNodes.RUnlock()
	if errL != nil {
		return 0, fmt.Errorf("graph: lhs: %w", ErrBadParent)
	}
	if errR != nil {
		return 0, fmt.Errorf("graph: rhs: %w", ErrBadParent)
	}
	return g.append(&node{kind: KindBinary, name: name, op: op, lhs: lhs, rhs: rhs}), nil
}

// AddPrevious registers a new Previous(source, default, lag) node.
// Enforces invariant (2): exactly one Temporal edge (to source) and
// one DefaultValue edge (to def) are implied by construction - there
// is no other way to build a Previous node, so the invariant holds by
// construction rather than by a post-hoc check.
func (g *Graph) AddPrevious(source, def NodeID, lag int, name string) (NodeID, error) {
	if lag < 1 {
		return 0, ErrBadLag
	}
	g.muNodes.RLock()
	_, errS := g.nodeLocked(source)
	_, errD := g.nodeLocked(def)
	g.muNodes.RUnlock()
	if errS != nil {
		return 0, fmt.Errorf("graph: source: %w", ErrBadParent)
	}
	if errD != nil {
		return 0, fmt.Errorf("graph: default: %w", ErrBadParent)
	}
	return g.append(&node{kind: KindPrevious, name: name, source: source, def: def, lag: lag}), nil
}

// AddSolverVariable registers a new unknown whose value is determined
// by constraints rather than direct evaluation.
func (g *Graph) AddSolverVariable(name string) NodeID {
	return g.append(&node{kind: KindSolverVariable, name: name})
}

// AddConstraint registers Constraint{variable, lhs, rhs}: variable
// must be a SolverVariable; lhs and rhs must already exist.
// Semantically value(lhs) - value(rhs) = 0 wherever both are defined.
func (g *Graph) AddConstraint(variable, lhs, rhs NodeID) error {
	g.muNodes.RLock()
	vn, errV := g.nodeLocked(variable)
	_, errL := g.nodeLocked(lhs)
	_, errR := g.nodeLocked(rhs)
	g.muNodes.RUnlock()
	if errV != nil {
		return fmt.Errorf("graph: variable: %w", ErrBadParent)
	}
	if vn.kind != KindSolverVariable {
		return fmt.Errorf("graph: constraint variable %d is %s, not SolverVariable: %w", variable, vn.kind, ErrWrongKind)
	}
	if errL != nil {
		return fmt.Errorf("graph: lhs: %w", ErrBadParent)
	}
	if errR != nil {
		return fmt.Errorf("graph: rhs: %w", ErrBadParent)
	}

	g.muMeta.Lock()
	g.constraints = append(g.constraints, Constraint{Variable: variable, LHS: lhs, RHS: rhs})
	g.muMeta.Unlock()
	return nil
}

// Constraints returns a snapshot of all registered constraints.
func (g *Graph) Constraints() []Constraint {
	g.muMeta.RLock()
	defer g.muMeta.RUnlock()
	out := make([]Constraint, len(g.constraints))
	copy(out, g.constraints)
	return out
}

// ConstraintsFor returns the constraints whose Variable equals id.
func (g *Graph) ConstraintsFor(id NodeID) []Constraint {
	g.muMeta.RLock()
	defer g.muMeta.RUnlock()
	var out []Constraint
	for _, c := range g.constraints {
		if c.Variable == id {
			out = append(out, c)
		}
	}
	return out
}

// SolverVariables returns the logical ids of every KindSolverVariable
// node, in ascending id order.
func (g *Graph) SolverVariables() []NodeID {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	var out []NodeID
	for _, n := range g.nodes {
		if n.kind == KindSolverVariable {
			out = append(out, n.id)
		}
	}
	return out
}

// SetMetadata declares unit and/or temporalType on id, returning the
// previous (unit, hadUnit, temporalType) so callers can detect and
// warn on overwrite, exactly as spec's declare_type requires. Passing
// setUnit == false or TemporalUnknown leaves that field untouched; with
// setUnit == true the unit is written even when it is empty.
func (g *Graph) SetMetadata(id NodeID, unit string, setUnit bool, temporal TemporalType) (prevUnit string, prevHadUnit bool, prevTemporal TemporalType, err error) {
	g.muNodes.Lock()
	defer g.muNodes.Unlock()
	n, e := g.nodeLocked(id)
	if e != nil {
		return "", false, TemporalUnknown, e
	}
	prevUnit, prevHadUnit, prevTemporal = n.meta.Unit, n.meta.HasUnit, n.meta.TemporalType
	if setUnit {
		n.meta.Unit = unit
		n.meta.HasUnit = true
	}
	if temporal != TemporalUnknown {
		n.meta.TemporalType = temporal
	}
	return prevUnit, prevHadUnit, prevTemporal, nil
}

// Metadata returns the currently declared metadata for id.
func (g *Graph) Metadata(id NodeID) (Metadata, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, err := g.nodeLocked(id)
	if err != nil {
		return Metadata{}, err
	}
	return n.meta, nil
}

// Binary returns the (op, lhs, rhs) triple of a Binary node.
func (g *Graph) Binary(id NodeID) (op BinaryOp, lhs, rhs NodeID, err error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, e := g.nodeLocked(id)
	if e != nil {
		return 0, 0, 0, e
	}
	if n.kind != KindBinary {
		return 0, 0, 0, fmt.Errorf("graph: node %d is %s, not Binary: %w", id, n.kind, ErrWrongKind)
	}
	return n.op, n.lhs, n.rhs, nil
}

// Previous returns the (source, default, lag) triple of a Previous node.
func (g *Graph) Previous(id NodeID) (source, def NodeID, lag int, err error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, e := g.nodeLocked(id)
	if e != nil {
		return 0, 0, 0, e
	}
	if n.kind != KindPrevious {
		return 0, 0, 0, fmt.Errorf("graph: node %d is %s, not Previous: %w", id, n.kind, ErrWrongKind)
	}
	return n.source, n.def, n.lag, nil
}

// ConstantValues returns the declared value vector of a Constant node.
func (g *Graph) ConstantValues(id NodeID) ([]float64, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, err := g.nodeLocked(id)
	if err != nil {
		return nil, err
	}
	if n.kind != KindConstant {
		return nil, fmt.Errorf("graph: node %d is %s, not Constant: %w", id, n.kind, ErrWrongKind)
	}
	out := make([]float64, len(n.values))
	copy(out, n.values)
	return out, nil
}

// Parents returns the dependency edges emitted by id: a Binary node
// yields two Value edges, a Previous node yields one Temporal and one
// DefaultValue edge, Constant and SolverVariable nodes yield none.
func (g *Graph) Parents(id NodeID) ([]Edge, error) {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	n, err := g.nodeLocked(id)
	if err != nil {
		return nil, err
	}
	switch n.kind {
	case KindBinary:
		return []Edge{
			{From: n.lhs, To: id, Kind: Value},
			{From: n.rhs, To: id, Kind: Value},
		}, nil
	case KindPrevious:
		return []Edge{
			{From: n.source, To: id, Kind: Temporal},
			{From: n.def, To: id, Kind: DefaultValue},
		}, nil
	default:
		return nil, nil
	}
}

// AllNodeIDs returns every logical id in ascending order.
func (g *Graph) AllNodeIDs() []NodeID {
	g.muNodes.RLock()
	defer g.muNodes.RUnlock()
	out := make([]NodeID, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n.id
	}
	return out
}
