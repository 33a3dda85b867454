package typecheck

import (
	"fmt"
	"sync"

	"github.com/prismfinance/engine/graph"
)

// Validator runs the two-phase unit/temporal-type check described in
// the package doc and caches its inferred results per node.
//
// Node ids in graph.Graph are assigned append-only and monotonically,
// so every parent id is strictly less than its child's id; inference
// therefore only ever needs a single ascending pass over AllNodeIDs,
// with no separate topological-order dependency (that ordering is the
// compiler's concern, not the validator's).
type Validator struct {
	g *graph.Graph

	mu    sync.Mutex
	cache map[graph.NodeID]Inferred
	valid bool
}

// New returns a Validator bound to g.
func New(g *graph.Graph) *Validator {
	return &Validator{g: g, cache: make(map[graph.NodeID]Inferred)}
}

// Invalidate discards cached inference results. Call this after any
// metadata mutation (declare_type) on the bound graph.
func (v *Validator) Invalidate() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.valid = false
	v.cache = make(map[graph.NodeID]Inferred)
}

// Inferred returns the cached inferred type for id, running Validate
// first if the cache is stale. Returns an error only if Validate fails.
func (v *Validator) Inferred(id graph.NodeID) (Inferred, error) {
	v.mu.Lock()
	stale := !v.valid
	v.mu.Unlock()
	if stale {
		if err := v.Validate(); err != nil {
			return Inferred{}, err
		}
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	inf, ok := v.cache[id]
	if !ok {
		return Inferred{}, fmt.Errorf("typecheck: node %d: %w", id, graph.ErrNodeNotFound)
	}
	return inf, nil
}

// Validate runs inference bottom-up over every node, then verifies
// declared metadata against the inferred result. It stops and returns
// the first *Error encountered, in ascending node-id order, matching
// this package's deterministic-by-construction evaluation order.
func (v *Validator) Validate() error {
	v.mu.Lock()
	defer v.mu.Unlock()

	cache := make(map[graph.NodeID]Inferred, v.g.NodeCount())
	for _, id := range v.g.AllNodeIDs() {
		inf, err := v.inferOne(id, cache)
		if err != nil {
			return err
		}
		cache[id] = inf

		meta, err := v.g.Metadata(id)
		if err != nil {
			return err
		}
		if err := verify(id, inf, meta); err != nil {
			return err
		}
	}

	v.cache = cache
	v.valid = true
	return nil
}

func (v *Validator) inferOne(id graph.NodeID, cache map[graph.NodeID]Inferred) (Inferred, error) {
	kind, err := v.g.Kind(id)
	if err != nil {
		return Inferred{}, err
	}

	switch kind {
	case graph.KindConstant, graph.KindSolverVariable:
		meta, err := v.g.Metadata(id)
		if err != nil {
			return Inferred{}, err
		}
		return Inferred{HasUnit: meta.HasUnit, Unit: meta.Unit, Temporal: meta.TemporalType}, nil

	case graph.KindBinary:
		op, lhs, rhs, err := v.g.Binary(id)
		if err != nil {
			return Inferred{}, err
		}
		return inferBinary(int(id), op, cache[lhs], cache[rhs])

	case graph.KindPrevious:
		source, _, _, err := v.g.Previous(id)
		if err != nil {
			return Inferred{}, err
		}
		return cache[source], nil

	default:
		return Inferred{}, fmt.Errorf("typecheck: node %d: unhandled kind %v", id, kind)
	}
}

func inferBinary(id int, op graph.BinaryOp, lhs, rhs Inferred) (Inferred, error) {
	switch op {
	case graph.OpAdd, graph.OpSub:
		return inferAddSub(id, lhs, rhs)
	case graph.OpMul:
		return inferMulDiv(lhs, rhs, true), nil
	case graph.OpDiv:
		return inferMulDiv(lhs, rhs, false), nil
	default:
		return Inferred{}, fmt.Errorf("typecheck: node %d: unknown binary op %v", id, op)
	}
}

func inferAddSub(id int, lhs, rhs Inferred) (Inferred, error) {
	out := Inferred{}
	if lhs.HasUnit && rhs.HasUnit {
		if lhs.Unit != rhs.Unit {
			return Inferred{}, &Error{
				Kind:   UnitMismatch,
				NodeID: id,
				Detail: fmt.Sprintf("node %d: cannot combine units '%s' and '%s'", id, lhs.Unit, rhs.Unit),
			}
		}
		out.HasUnit = true
		out.Unit = lhs.Unit
	}

	switch {
	case lhs.Temporal == graph.Flow && rhs.Temporal == graph.Flow:
		out.Temporal = graph.Flow
	case lhs.Temporal == graph.Stock && rhs.Temporal == graph.Stock:
		return Inferred{}, &Error{
			Kind:   TemporalAmbiguous,
			NodeID: id,
			Detail: fmt.Sprintf("node %d: Stock +/- Stock is ambiguous", id),
		}
	case lhs.Temporal == graph.Stock || rhs.Temporal == graph.Stock:
		out.Temporal = graph.Stock
	default:
		out.Temporal = graph.TemporalUnknown
	}
	return out, nil
}

// inferMulDiv handles Mul (isMul=true) and Div (isMul=false). Units
// concatenate (or cancel) when both sides are known; temporal type
// follows the dominant operand for Mul and the numerator for Div.
func inferMulDiv(lhs, rhs Inferred, isMul bool) Inferred {
	out := Inferred{}
	if lhs.HasUnit && rhs.HasUnit {
		lu, ru := parseUnit(lhs.Unit), parseUnit(rhs.Unit)
		var result unit
		if isMul {
			result = lu.mul(ru)
		} else {
			result = lu.div(ru)
		}
		out.HasUnit = true
		out.Unit = result.String()
	}

	if isMul {
		out.Temporal = dominant(lhs.Temporal, rhs.Temporal)
	} else {
		out.Temporal = lhs.Temporal
	}
	return out
}

// dominant ranks Stock > Flow > Unknown.
func dominant(a, b graph.TemporalType) graph.TemporalType {
	rank := func(t graph.TemporalType) int {
		switch t {
		case graph.Stock:
			return 2
		case graph.Flow:
			return 1
		default:
			return 0
		}
	}
	if rank(a) >= rank(b) {
		return a
	}
	return b
}

func verify(id graph.NodeID, inf Inferred, meta graph.Metadata) error {
	if meta.HasUnit {
		if !inf.HasUnit || inf.Unit != meta.Unit {
			return &Error{
				Kind:   DeclaredVsInferred,
				NodeID: int(id),
				Detail: fmt.Sprintf("node %d: declared unit '%s' does not match inferred unit '%s'", id, meta.Unit, inf.unitOrNone()),
			}
		}
	}
	if meta.TemporalType != graph.TemporalUnknown {
		if inf.Temporal != meta.TemporalType {
			return &Error{
				Kind:   DeclaredVsInferred,
				NodeID: int(id),
				Detail: fmt.Sprintf("node %d: declared temporal type '%s' does not match inferred type '%s'", id, meta.TemporalType, inf.temporalOrNone()),
			}
		}
	}
	return nil
}
