package dirty

import (
	"sort"

	"github.com/prismfinance/engine/graph"
)

// Affected returns changed plus every node reachable forward from it
// by following Value, Temporal, and DefaultValue edges, in ascending
// NodeID order. The changed ids themselves are always included so
// callers do not need to special-case "did the input itself move."
func Affected(g *graph.Graph, changed []graph.NodeID) ([]graph.NodeID, error) {
	if g == nil {
		return nil, ErrGraphNil
	}

	children, err := forwardAdjacency(g)
	if err != nil {
		return nil, err
	}

	visited := make(map[graph.NodeID]bool, len(changed))
	queue := make([]graph.NodeID, 0, len(changed))
	for _, id := range changed {
		if !visited[id] {
			visited[id] = true
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if !visited[child] {
				visited[child] = true
				queue = append(queue, child)
			}
		}
	}

	out := make([]graph.NodeID, 0, len(visited))
	for id := range visited {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// forwardAdjacency inverts graph.Parents (which yields incoming edges
// per node) into a From -> []To map usable for forward traversal.
func forwardAdjacency(g *graph.Graph) (map[graph.NodeID][]graph.NodeID, error) {
	children := make(map[graph.NodeID][]graph.NodeID)
	for _, id := range g.AllNodeIDs() {
		edges, err := g.Parents(id)
		if err != nil {
			return nil, err
		}
		for _, e := range edges {
			children[e.From] = append(children[e.From], e.To)
		}
	}
	return children, nil
}
