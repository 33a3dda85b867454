package canvas

import (
	"fmt"
	"io"

	"github.com/prismfinance/engine/batch"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/serialize"
	"github.com/prismfinance/engine/solver"
	"github.com/prismfinance/engine/trace"
	"github.com/prismfinance/engine/typecheck"
)

// Solve resolves every solver variable against its registered
// constraints, mutating the live ledger in place. It returns one
// warning string per solver variable with no constraints at all (left
// at its compiled-in zero default).
func (c *Canvas) Solve(opts ...solver.Option) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil || c.ledger == nil {
		return nil, ErrNotComputed
	}
	return solver.Solve(c.g, c.program, c.ledger, opts...)
}

// Scenario maps an overridden Var to its replacement value vector.
type Scenario map[*Var][]float64

// RunBatch evaluates every scenario against its own clone of the
// current ledger, in parallel, sharing the compiled program read-only.
func (c *Canvas) RunBatch(scenarios map[string]Scenario, opts ...batch.Option) (map[string]batch.Result, error) {
	c.mu.Lock()
	program, baseline, g := c.program, c.ledger, c.g
	c.mu.Unlock()
	if program == nil || baseline == nil {
		return nil, ErrNotComputed
	}

	converted := make(map[string]batch.Scenario, len(scenarios))
	for name, overrides := range scenarios {
		bs := make(batch.Scenario, len(overrides))
		for v, values := range overrides {
			bs[v.id] = values
		}
		converted[name] = bs
	}
	return batch.Run(g, program, baseline, converted, opts...), nil
}

// ValueFrom reads v's value column out of a batch ledger (typically
// res.Ledger from a RunBatch result) rather than the canvas's own.
func (c *Canvas) ValueFrom(l *ledger.Ledger, v *Var) ([]float64, error) {
	c.mu.Lock()
	program := c.program
	c.mu.Unlock()
	if program == nil {
		return nil, ErrNotComputed
	}
	phys, ok := program.Physical(v.id)
	if !ok {
		return nil, fmt.Errorf("canvas: %s: %w", v.name, ErrNotComputed)
	}
	return l.Column(phys)
}

// Trace renders the ancestor chain and values feeding v.
func (c *Canvas) Trace(v *Var) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.program == nil || c.ledger == nil {
		return "", ErrNotComputed
	}
	return trace.Render(c.g, c.program, c.ledger, v.id)
}

// SaveGraph writes the canvas's structural state (not its compiled
// program or ledger) to w.
func (c *Canvas) SaveGraph(w io.Writer) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return serialize.Encode(w, c.g)
}

// LoadGraph replaces the canvas's graph with one decoded from r,
// discarding any compiled program and ledger - ComputeAll must run
// again before GetValue, Recompute, Solve, RunBatch, or Trace.
func (c *Canvas) LoadGraph(r io.Reader) error {
	g, err := serialize.Decode(r)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.g = g
	c.v = typecheck.New(g)
	c.program = nil
	c.ledger = nil
	return nil
}
