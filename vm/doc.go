// Package vm interprets a bytecode.Program against a ledger.Ledger.
//
// Execution is time-major: the outer loop walks t from 0 to H-1, and
// the inner loop walks the instruction stream in the fixed order the
// compiler assigned. This is the opposite of an instruction-major
// loop (outer: instructions, inner: t) that would compute one node's
// full column before moving to the next.
//
// Instruction-major execution would be wrong here, not just slower:
// an OpPrevious instruction at t reads another column's value at
// t-Lag, which for Lag=1 is the same time step the *previous* outer
// iteration just finished computing for every other node. A
// multi-period recurrence (an ending-balance sweep that feeds next
// period's beginning balance) only resolves correctly if every
// column is advanced through t in lockstep; walking one column to
// completion before starting the next would read zeros for periods
// that have not been computed yet. The compiler's topological
// ordering of the instruction stream still matters - it is what lets
// the inner loop read every operand before producing it - but it
// governs dependency order within a single t, not across t.
package vm
