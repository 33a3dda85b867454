package typecheck

import "errors"

// Kind classifies why validation failed.
type Kind int

const (
	// UnitMismatch: an Add/Sub combined two different, both-known units.
	UnitMismatch Kind = iota + 1
	// TemporalAmbiguous: a Stock+Stock (or Stock-Stock) combination was inferred.
	TemporalAmbiguous
	// DeclaredVsInferred: a node's declared metadata disagrees with its
	// structurally inferred type.
	DeclaredVsInferred
)

func (k Kind) String() string {
	switch k {
	case UnitMismatch:
		return "UnitMismatch"
	case TemporalAmbiguous:
		return "TemporalAmbiguous"
	case DeclaredVsInferred:
		return "DeclaredVsInferred"
	default:
		return "Unknown"
	}
}

// ErrValidation is the sentinel every *Error wraps, so callers can
// branch with errors.Is(err, typecheck.ErrValidation) without caring
// about the specific Kind.
var ErrValidation = errors.New("typecheck: validation failed")

// Error is the structured validation failure surfaced by Validate.
type Error struct {
	Kind   Kind
	NodeID int
	Detail string
}

func (e *Error) Error() string {
	return "typecheck: " + e.Kind.String() + ": " + e.Detail
}

// Unwrap lets errors.Is(err, ErrValidation) succeed for any *Error.
func (e *Error) Unwrap() error {
	return ErrValidation
}
