package trace

import (
	"fmt"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/prismfinance/engine/bytecode"
	"github.com/prismfinance/engine/graph"
	"github.com/prismfinance/engine/ledger"
)

// Render returns a tab-aligned table: one row per ancestor of id (and
// id itself), in ascending logical-id order, showing that node's id,
// name, kind, and its full value column.
func Render(g *graph.Graph, p *bytecode.Program, l *ledger.Ledger, id graph.NodeID) (string, error) {
	ids, err := ancestorsAscending(g, id)
	if err != nil {
		return "", err
	}

	var buf strings.Builder
	w := tabwriter.NewWriter(&buf, 0, 2, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tKIND\tVALUES")

	for _, nid := range ids {
		name, err := g.Name(nid)
		if err != nil {
			return "", err
		}
		kind, err := g.Kind(nid)
		if err != nil {
			return "", err
		}
		phys, ok := p.Physical(nid)
		if !ok {
			return "", fmt.Errorf("trace: node %d: %w", nid, ErrNoPhysicalIndex)
		}
		col, err := l.Column(phys)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", nid, name, kind, formatValues(col))
	}

	if err := w.Flush(); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// formatValues renders a value column the way Dense.String renders a
// matrix row: comma-separated, bracketed, %g precision.
func formatValues(values []float64) string {
	var s strings.Builder
	s.WriteString("[")
	for i, v := range values {
		fmt.Fprintf(&s, "%g", v)
		if i < len(values)-1 {
			s.WriteString(", ")
		}
	}
	s.WriteString("]")
	return s.String()
}

// ancestorsAscending returns id plus every node reachable by walking
// Parents backward, in ascending id order. Ascending order is a valid
// topological order here because every edge's From id is strictly
// less than its To id (graph.Graph's append-only id assignment), so
// listing ancestors before descendants falls out of a plain sort.
func ancestorsAscending(g *graph.Graph, id graph.NodeID) ([]graph.NodeID, error) {
	visited := map[graph.NodeID]bool{id: true}
	queue := []graph.NodeID{id}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		edges, err := g.Parents(cur)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			if !visited[e.From] {
				visited[e.From] = true
				queue = append(queue, e.From)
			}
		}
	}

	out := make([]graph.NodeID, 0, len(visited))
	for nid := range visited {
		out = append(out, nid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}
