package graph

// Grid spacing for layered placement. Horizontal slots are wide enough for
// typical package names; both axes leave a margin of two cells.
const (
	horizontalSpacing = 15
	verticalSpacing   = 4
	layoutMargin      = 2
)

// Position places one node on the layout grid.
type Position struct {
	Node string `json:"node"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// Layout is a full layered placement of a graph. MaxWidth and MaxHeight
// bound the occupied grid, including label widths, for scroll and viewport
// arithmetic.
type Layout struct {
	Positions []Position `json:"positions"`
	MaxWidth  int        `json:"max_width"`
	MaxHeight int        `json:"max_height"`
}

// Layout assigns grid coordinates to every node using layered placement.
//
// The first layer holds the nodes with no outgoing edges. Each following
// layer holds the nodes whose outgoing-edge targets, over both edge kinds,
// are all placed in earlier layers. When a cycle leaves no node placeable,
// the remaining nodes are force-placed together into one final layer so
// placement always terminates with every node positioned.
//
// Within a layer, nodes run left to right in node insertion order, one
// fixed-width slot each. Layers stack top to bottom. The result is a pure
// function of the current nodes and edges and is recomputed on every call.
func (g *DependencyGraph) Layout() Layout {
	n := len(g.names)
	assigned := make([]bool, n)
	placed := 0
	var layers [][]NodeIndex

	for placed < n {
		var layer []NodeIndex
		for i := range g.names {
			if assigned[i] {
				continue
			}
			ready := true
			for _, target := range g.outgoing[i] {
				if !assigned[target] {
					ready = false
					break
				}
			}
			if ready {
				layer = append(layer, NodeIndex(i))
			}
		}
		if len(layer) == 0 {
			// Deadlocked on a cycle: place everything left in one layer.
			for i := range g.names {
				if !assigned[i] {
					layer = append(layer, NodeIndex(i))
				}
			}
		}
		for _, i := range layer {
			assigned[i] = true
		}
		placed += len(layer)
		layers = append(layers, layer)
	}

	var out Layout
	for layerIdx, layer := range layers {
		y := layerIdx*verticalSpacing + layoutMargin
		for slot, node := range layer {
			x := slot*horizontalSpacing + layoutMargin
			name := g.names[node]
			out.Positions = append(out.Positions, Position{Node: name, X: x, Y: y})
			if w := x + len(name); w > out.MaxWidth {
				out.MaxWidth = w
			}
			if h := y + 1; h > out.MaxHeight {
				out.MaxHeight = h
			}
		}
	}
	return out
}
