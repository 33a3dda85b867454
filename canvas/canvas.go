package canvas

import (
	"fmt"
	"sync"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/compiler"
	"github.com/prismfinance/engine/dirty"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/typecheck"
	"github.com/prismfinance/engine/vm"
)

// Canvas owns one graph, its validator, and - once ComputeAll has run
// at least once - the compiled program and ledger evaluated against
// it.
type Canvas struct {
	mu sync.Mutex

	g *graph.Graph
	v *typecheck.Validator

	program *bytecode.Program
	ledger  *ledger.Ledger
}

// New returns an empty Canvas ready for node construction.
func New() *Canvas {
	g := graph.NewGraph()
	return &Canvas{g: g, v: typecheck.New(g)}
}

// Graph exposes the underlying graph for packages that need to read it
// directly (trace, serialize callers, tests).
func (c *Canvas) Graph() *graph.Graph { return c.g }

// Var is a handle to one logical node of a Canvas's graph.
type Var struct {
	canvas *Canvas
	id     graph.NodeID
	name   string
}

// ID returns the underlying logical id.
func (v *Var) ID() graph.NodeID { return v.id }

// String renders the Var's declared name for diagnostics.
func (v *Var) String() string { return v.name }

// MetadataOption configures the unit/temporal-type declaration made at
// Var construction or via DeclareType.
type MetadataOption func(*metadataArgs)

type metadataArgs struct {
	unit         string
	setUnit      bool
	temporalType graph.TemporalType
}

// WithUnit declares a symbolic unit (e.g. "USD").
func WithUnit(unit string) MetadataOption {
	return func(a *metadataArgs) { a.unit, a.setUnit = unit, true }
}

// WithTemporalType declares a Stock or Flow classification.
func WithTemporalType(t graph.TemporalType) MetadataOption {
	return func(a *metadataArgs) { a.temporalType = t }
}

func resolveMetadata(opts []MetadataOption) metadataArgs {
	var a metadataArgs
	for _, opt := range opts {
		opt(&a)
	}
	return a
}

// AddVar registers a new constant input: values is a single scalar
// ([]float64{x}) or a full horizon-length vector.
func (c *Canvas) AddVar(values []float64, name string, opts ...MetadataOption) (*Var, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.g.AddConstant(values, name)
	if err != nil {
		return nil, err
	}
	v := &Var{canvas: c, id: id, name: name}

	a := resolveMetadata(opts)
	if a.setUnit || a.temporalType != graph.TemporalUnknown {
		if _, _, _, err := c.g.SetMetadata(id, a.unit, a.setUnit, a.temporalType); err != nil {
			return nil, err
		}
		c.v.Invalidate()
	}
	return v, nil
}

// SolverVar registers a new unknown to be resolved by Solve.
func (c *Canvas) SolverVar(name string) *Var {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.g.AddSolverVariable(name)
	return &Var{canvas: c, id: id, name: name}
}

func (v *Var) binary(op graph.BinaryOp, other *Var, symbol string) (*Var, error) {
	if v.canvas != other.canvas {
		return nil, ErrCrossCanvas
	}
	c := v.canvas
	c.mu.Lock()
	defer c.mu.Unlock()

	name := fmt.Sprintf("(%s %s %s)", v.name, symbol, other.name)
	id, err := c.g.AddBinary(op, v.id, other.id, name)
	if err != nil {
		return nil, err
	}
	return &Var{canvas: c, id: id, name: name}, nil
}

// Add returns a new Var computing v + other.
func (v *Var) Add(other *Var) (*Var, error) { return v.binary(graph.OpAdd, other, "+") }

// Sub returns a new Var computing v - other.
func (v *Var) Sub(other *Var) (*Var, error) { return v.binary(graph.OpSub, other, "-") }

// Mul returns a new Var computing v * other.
func (v *Var) Mul(other *Var) (*Var, error) { return v.binary(graph.OpMul, other, "*") }

// Div returns a new Var computing v / other.
func (v *Var) Div(other *Var) (*Var, error) { return v.binary(graph.OpDiv, other, "/") }

// Previous returns a new Var equal to v shifted back lag periods,
// falling back to def's value for periods before the shift has data.
func (v *Var) Previous(lag int, def *Var) (*Var, error) {
	if v.canvas != def.canvas {
		return nil, ErrCrossCanvas
	}
	c := v.canvas
	c.mu.Lock()
	defer c.mu.Unlock()

	name := fmt.Sprintf("%s.previous(%d)", v.name, lag)
	id, err := c.g.AddPrevious(v.id, def.id, lag, name)
	if err != nil {
		return nil, err
	}
	return &Var{canvas: c, id: id, name: name}, nil
}

// DeclareType mutates v's metadata for static analysis, returning one
// warning string per field that overwrote a previously different
// value, and invalidating the validator's cache.
func (v *Var) DeclareType(opts ...MetadataOption) ([]string, error) {
	c := v.canvas
	c.mu.Lock()
	defer c.mu.Unlock()

	a := resolveMetadata(opts)
	prevUnit, prevHadUnit, prevTemporal, err := c.g.SetMetadata(v.id, a.unit, a.setUnit, a.temporalType)
	if err != nil {
		return nil, err
	}
	c.v.Invalidate()

	var warnings []string
	if a.setUnit && prevHadUnit && prevUnit != a.unit {
		warnings = append(warnings, fmt.Sprintf("overwriting unit %q with %q on %q", prevUnit, a.unit, v.name))
	}
	if a.temporalType != graph.TemporalUnknown && prevTemporal != graph.TemporalUnknown && prevTemporal != a.temporalType {
		warnings = append(warnings, fmt.Sprintf("overwriting temporal type %s with %s on %q", prevTemporal, a.temporalType, v.name))
	}
	return warnings, nil
}

// MustEqual registers the constraint value(v) == value(other), to be
// closed by Solve. v must be a solver variable.
func (v *Var) MustEqual(other *Var) error {
	if v.canvas != other.canvas {
		return ErrCrossCanvas
	}
	c := v.canvas
	c.mu.Lock()
	defer c.mu.Unlock()

	kind, err := c.g.Kind(v.id)
	if err != nil {
		return err
	}
	if kind != graph.KindSolverVariable {
		return ErrNotSolverVariable
	}
	return c.g.AddConstraint(v.id, v.id, other.id)
}

// Validate runs the static unit/temporal checker over the whole graph.
func (c *Canvas) Validate() error {
	c.mu.Lock()
	v := c.v
	c.mu.Unlock()
	return v.Validate()
}

// ComputeAll (re)compiles the graph and evaluates it from scratch,
// discarding any previously held program and ledger.
func (c *Canvas) ComputeAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	p, err := compiler.Compile(c.g)
	if err != nil {
		return err
	}
	l, err := ledger.New(p.PhysicalCount, p.Horizon)
	if err != nil {
		return err
	}
	if err := vm.Run(p, l); err != nil {
		return err
	}
	c.program, c.ledger = p, l
	return nil
}

// SetValue overwrites vr's column in the live ledger without
// recompiling. Call Recompute afterward to propagate the change.
func (c *Canvas) SetValue(vr *Var, values []float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil || c.ledger == nil {
		return ErrNotComputed
	}
	phys, ok := c.program.Physical(vr.id)
	if !ok {
		return fmt.Errorf("canvas: %s: %w", vr.name, ErrNotComputed)
	}
	return c.ledger.WriteConstant(phys, values)
}

// Recompute re-evaluates the forward-reachable closure of changed,
// reusing the program and ledger from the last ComputeAll. Callers
// must call SetValue for every changed input before calling Recompute.
func (c *Canvas) Recompute(changed ...*Var) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil || c.ledger == nil {
		return ErrNotComputed
	}

	ids := make([]graph.NodeID, len(changed))
	for i, v := range changed {
		ids[i] = v.id
	}
	affected, err := dirty.Affected(c.g, ids)
	if err != nil {
		return err
	}
	dirtyPhys := make([]int, 0, len(affected))
	for _, id := range affected {
		if phys, ok := c.program.Physical(id); ok {
			dirtyPhys = append(dirtyPhys, phys)
		}
	}
	return vm.Recompute(c.program, c.ledger, dirtyPhys)
}

// GetValue returns a copy of v's full per-period value column.
func (c *Canvas) GetValue(v *Var) ([]float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil || c.ledger == nil {
		return nil, ErrNotComputed
	}
	phys, ok := c.program.Physical(v.id)
	if !ok {
		return nil, fmt.Errorf("canvas: %s: %w", v.name, ErrNotComputed)
	}
	return c.ledger.Column(phys)
}
