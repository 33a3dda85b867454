// Package batch evaluates many scenarios of the same compiled program
// in parallel, each against its own cloned ledger.Ledger, so that no
// scenario can observe another's writes.
//
// Concurrency is bounded by a worker pool built on
// golang.org/x/sync/errgroup, upgraded from this codebase's
// existing sync.WaitGroup-over-goroutines fan-out pattern (seen in
// its concurrency tests) to get error-group context plumbing and a
// concurrency limit for free. Per-scenario failures never abort the
// batch: they are captured into that scenario's Result rather than
// returned from the errgroup, which is what actually gives every
// other scenario the right to keep running to completion.
package batch
