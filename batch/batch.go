package batch

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/dirty"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
	"github.com/prismfinance/engine/solver"
	"github.com/prismfinance/engine/vm"
)

// Scenario maps an overridden input node to its replacement value
// vector (length 1 to broadcast, or the program's horizon).
type Scenario map[graph.NodeID][]float64

// Result is one scenario's outcome: its own isolated ledger, or the
// error it failed with. Exactly one of the two is meaningful.
type Result struct {
	Ledger *ledger.Ledger
	Err    error
}

// Run evaluates every scenario in scenarios against its own clone of
// baseline, sharing g and p read-only, and returns one Result per
// scenario name. A scenario that fails to converge or references an
// unknown override target reports its own error; it never aborts its
// siblings.
func Run(g *graph.Graph, p *bytecode.Program, baseline *ledger.Ledger, scenarios map[string]Scenario, opts ...Option) map[string]Result {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	names := make([]string, 0, len(scenarios))
	for name := range scenarios {
		names = append(names, name)
	}
	sort.Strings(names)

	results := make([]Result, len(names))

	eg, ctx := errgroup.WithContext(o.ctx)
	if o.chunkSize > 0 {
		eg.SetLimit(o.chunkSize)
	}

	for i, name := range names {
		i, name, overrides := i, name, scenarios[name]
		eg.Go(func() error {
			results[i] = runOne(ctx, g, p, baseline, overrides)
			if results[i].Err != nil {
				o.logger.Warn().Str("scenario", name).Err(results[i].Err).Msg("scenario failed")
			}
			return nil
		})
	}
	_ = eg.Wait()

	out := make(map[string]Result, len(names))
	for i, name := range names {
		out[name] = results[i]
	}
	return out
}

func runOne(ctx context.Context, g *graph.Graph, p *bytecode.Program, baseline *ledger.Ledger, overrides Scenario) Result {
	l := baseline.Clone()

	changed := make([]graph.NodeID, 0, len(overrides))
	for id, values := range overrides {
		phys, ok := p.Physical(id)
		if !ok {
			return Result{Err: fmt.Errorf("batch: node %d: %w", id, ErrUnknownOverrideTarget)}
		}
		if err := l.WriteConstant(phys, values); err != nil {
			return Result{Err: fmt.Errorf("batch: writing override for node %d: %w", id, err)}
		}
		changed = append(changed, id)
	}

	if len(changed) > 0 {
		affected, err := dirty.Affected(g, changed)
		if err != nil {
			return Result{Err: fmt.Errorf("batch: %w", err)}
		}
		dirtyPhys := make([]int, 0, len(affected))
		for _, id := range affected {
			if phys, ok := p.Physical(id); ok {
				dirtyPhys = append(dirtyPhys, phys)
			}
		}
		if err := vm.Recompute(p, l, dirtyPhys); err != nil {
			return Result{Err: fmt.Errorf("batch: %w", err)}
		}
	}

	if len(g.SolverVariables()) > 0 {
		if ctx.Err() != nil {
			return Result{Err: ctx.Err()}
		}
		if _, err := solver.Solve(g, p, l); err != nil {
			return Result{Err: fmt.Errorf("batch: %w", err)}
		}
	}

	return Result{Ledger: l}
}
