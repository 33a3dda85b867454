package typecheck

import "github.com/prismfinance/engine/graph"

// Inferred is the bottom-up inferred type of a node. HasUnit is false
// when the unit is unknown (an untyped leaf with no declared unit
// propagating through formulas).
type Inferred struct {
	HasUnit  bool
	Unit     string
	Temporal graph.TemporalType
}

func (i Inferred) unitOrNone() string {
	if !i.HasUnit {
		return "None"
	}
	return i.Unit
}

func (i Inferred) temporalOrNone() string {
	if i.Temporal == graph.TemporalUnknown {
		return "None"
	}
	return i.Temporal.String()
}
