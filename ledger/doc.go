// Package ledger implements the dense time-series store the VM reads
// and writes: a single contiguous []float64 of shape physical_count x H
// in which each physical column's H time steps are stored
// contiguously, alongside a same-shaped bitmap tracking which cells
// have been computed.
//
// The flat-slice-plus-row/col-accessor shape follows this codebase's
// existing dense-matrix convention; Ledger specializes it for a fixed
// horizon H (the column count never changes after construction) and
// adds the validity bitmap the VM needs to support partial
// (dirty-subgraph) recompute.
package ledger
