package ledger

import "fmt"

// Ledger is a dense physical_count x horizon matrix of float64 values,
// plus a same-shaped validity bitmap. Both are stored as flat,
// row-major slices: data[phys*H+t] is the value of physical column
// phys at time step t.
type Ledger struct {
	physicalCount int
	horizon       int
	data          []float64
	validity      []bool
}

// New allocates a zeroed Ledger of the given shape. Every cell starts
// invalid; VM execution marks cells valid as it writes them.
func New(physicalCount, horizon int) (*Ledger, error) {
	if physicalCount <= 0 || horizon <= 0 {
		return nil, ErrInvalidShape
	}
	n := physicalCount * horizon
	return &Ledger{
		physicalCount: physicalCount,
		horizon:       horizon,
		data:          make([]float64, n),
		validity:      make([]bool, n),
	}, nil
}

// PhysicalCount returns the number of physical columns (rows of the
// backing matrix).
func (l *Ledger) PhysicalCount() int { return l.physicalCount }

// Horizon returns H, the number of time steps.
func (l *Ledger) Horizon() int { return l.horizon }

func (l *Ledger) index(phys, t int) (int, error) {
	if phys < 0 || phys >= l.physicalCount || t < 0 || t >= l.horizon {
		return 0, fmt.Errorf("ledger: (%d,%d) of (%d,%d): %w", phys, t, l.physicalCount, l.horizon, ErrIndexOutOfRange)
	}
	return phys*l.horizon + t, nil
}

// At returns the value at (phys, t).
func (l *Ledger) At(phys, t int) (float64, error) {
	idx, err := l.index(phys, t)
	if err != nil {
		return 0, err
	}
	return l.data[idx], nil
}

// Set writes the value at (phys, t) without affecting validity.
func (l *Ledger) Set(phys, t int, v float64) error {
	idx, err := l.index(phys, t)
	if err != nil {
		return err
	}
	l.data[idx] = v
	return nil
}

// IsValid reports whether (phys, t) has been computed.
func (l *Ledger) IsValid(phys, t int) (bool, error) {
	idx, err := l.index(phys, t)
	if err != nil {
		return false, err
	}
	return l.validity[idx], nil
}

// SetValid sets the validity bit at (phys, t).
func (l *Ledger) SetValid(phys, t int, valid bool) error {
	idx, err := l.index(phys, t)
	if err != nil {
		return err
	}
	l.validity[idx] = valid
	return nil
}

// Column returns a copy of the full value row for phys.
func (l *Ledger) Column(phys int) ([]float64, error) {
	if phys < 0 || phys >= l.physicalCount {
		return nil, fmt.Errorf("ledger: phys %d: %w", phys, ErrIndexOutOfRange)
	}
	start := phys * l.horizon
	out := make([]float64, l.horizon)
	copy(out, l.data[start:start+l.horizon])
	return out, nil
}

// ColumnValid reports whether every time step of phys is marked valid.
func (l *Ledger) ColumnValid(phys int) (bool, error) {
	if phys < 0 || phys >= l.physicalCount {
		return false, fmt.Errorf("ledger: phys %d: %w", phys, ErrIndexOutOfRange)
	}
	start := phys * l.horizon
	for _, v := range l.validity[start : start+l.horizon] {
		if !v {
			return false, nil
		}
	}
	return true, nil
}

// WriteConstant broadcasts values across phys's column. If values has
// length 1, it is broadcast to every time step; if it has length H, it
// is written verbatim; any other length is a caller bug (the compiler
// guarantees one of these two shapes at constant-loading time).
func (l *Ledger) WriteConstant(phys int, values []float64) error {
	if phys < 0 || phys >= l.physicalCount {
		return fmt.Errorf("ledger: phys %d: %w", phys, ErrIndexOutOfRange)
	}
	start := phys * l.horizon
	switch len(values) {
	case 1:
		for t := 0; t < l.horizon; t++ {
			l.data[start+t] = values[0]
			l.validity[start+t] = true
		}
	case l.horizon:
		copy(l.data[start:start+l.horizon], values)
		for t := 0; t < l.horizon; t++ {
			l.validity[start+t] = true
		}
	default:
		return fmt.Errorf("ledger: constant length %d matches neither 1 nor horizon %d", len(values), l.horizon)
	}
	return nil
}

// Clone returns a deep, independent copy of the ledger. Used by the
// batch runner to give every scenario its own isolated value store
// while sharing the compiled bytecode read-only.
func (l *Ledger) Clone() *Ledger {
	data := make([]float64, len(l.data))
	copy(data, l.data)
	validity := make([]bool, len(l.validity))
	copy(validity, l.validity)
	return &Ledger{
		physicalCount: l.physicalCount,
		horizon:       l.horizon,
		data:          data,
		validity:      validity,
	}
}
