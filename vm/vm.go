package vm

import (
	"fmt"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/ledger"
)

func checkShape(p *bytecode.Program, l *ledger.Ledger) error {
	if p == nil {
		return ErrProgramNil
	}
	if l == nil {
		return ErrLedgerNil
	}
	if l.PhysicalCount() != p.PhysicalCount || l.Horizon() != p.Horizon {
		return fmt.Errorf("vm: ledger (%d,%d) vs program (%d,%d): %w",
			l.PhysicalCount(), l.Horizon(), p.PhysicalCount, p.Horizon, ErrShapeMismatch)
	}
	return nil
}

// Run executes the full program against l: it loads every constant,
// then walks t from 0 to H-1 evaluating the instruction stream in
// program order at each step. See the package doc for why the loop
// nests this way and not the reverse.
func Run(p *bytecode.Program, l *ledger.Ledger) error {
	if err := checkShape(p, l); err != nil {
		return err
	}

	for _, c := range p.Constants {
		if err := l.WriteConstant(c.Phys, c.Values); err != nil {
			return fmt.Errorf("vm: loading constant at phys %d: %w", c.Phys, err)
		}
	}

	for t := 0; t < p.Horizon; t++ {
		for _, instr := range p.Instructions {
			if err := step(l, instr, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// Recompute re-evaluates only the instructions whose output physical
// index appears in dirty, in program order, across the full horizon.
// Callers are responsible for writing any changed constant values into
// l before calling Recompute; dirty is expected to already be the
// forward-reachable closure of those changes (see package dirty).
func Recompute(p *bytecode.Program, l *ledger.Ledger, dirty []int) error {
	if err := checkShape(p, l); err != nil {
		return err
	}

	affected := make(map[int]bool, len(dirty))
	for _, d := range dirty {
		affected[d] = true
	}

	for t := 0; t < p.Horizon; t++ {
		for _, instr := range p.Instructions {
			if !affected[instr.Out] {
				continue
			}
			if err := step(l, instr, t); err != nil {
				return err
			}
		}
	}
	return nil
}

// step evaluates a single instruction at time t and writes its result.
// Division by zero and other non-finite results pass through untouched
// (IEEE-754 Inf/NaN), matching ordinary floating-point arithmetic: the
// VM never special-cases them, leaving detection to callers that care.
func step(l *ledger.Ledger, instr bytecode.Instruction, t int) error {
	var v float64

	switch instr.Kind {
	case bytecode.OpPrevious:
		if t >= instr.Lag {
			a, err := l.At(instr.A, t-instr.Lag)
			if err != nil {
				return err
			}
			v = a
		} else {
			b, err := l.At(instr.B, t)
			if err != nil {
				return err
			}
			v = b
		}

	default:
		a, err := l.At(instr.A, t)
		if err != nil {
			return err
		}
		b, err := l.At(instr.B, t)
		if err != nil {
			return err
		}
		switch instr.Kind {
		case bytecode.OpAdd:
			v = a + b
		case bytecode.OpSub:
			v = a - b
		case bytecode.OpMul:
			v = a * b
		case bytecode.OpDiv:
			v = a / b
		default:
			return fmt.Errorf("vm: unknown op %v at out %d", instr.Kind, instr.Out)
		}
	}

	if err := l.Set(instr.Out, t, v); err != nil {
		return err
	}
	return l.SetValid(instr.Out, t, true)
}
