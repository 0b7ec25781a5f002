package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/condagraph/condagraph/pkg/graph"
)

// Cell classes for the graph canvas, in paint priority order: node labels
// overwrite edge dots, conflict labels overwrite everything.
const (
	cellEmpty uint8 = iota
	cellEdgeDirect
	cellEdgeTransitive
	cellNodeDirect
	cellNodeTransitive
	cellNodeConflict
)

var cellStyles = map[uint8]lipgloss.Style{
	cellEdgeDirect:     lipgloss.NewStyle().Foreground(colorGreen),
	cellEdgeTransitive: lipgloss.NewStyle().Foreground(colorDim),
	cellNodeDirect:     lipgloss.NewStyle().Foreground(colorGreen).Bold(true),
	cellNodeTransitive: lipgloss.NewStyle().Foreground(colorBlue),
	cellNodeConflict:   lipgloss.NewStyle().Foreground(colorRed).Bold(true),
}

// =============================================================================
// Graph Tab
// =============================================================================

// graphHeight is the number of canvas rows visible on screen.
func (m AnalysisModel) graphHeight() int {
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	return h
}

func (m AnalysisModel) viewGraph() string {
	if len(m.layout.Positions) == 0 {
		return listDimStyle.Render("Graph is empty.")
	}

	canvas := m.renderCanvas()

	viewW := m.width
	if viewW < 20 {
		viewW = 20
	}
	viewH := m.graphHeight()

	var b strings.Builder
	b.WriteString(canvas.viewport(m.scrollX, m.scrollY, viewW, viewH))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("Nodes: %d  Edges: %d  Conflicts: %d",
		m.graph.NodeCount(), m.graph.EdgeCount(), len(m.conflicts))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Legend: Direct deps (green) / Transitive deps (blue)"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("Navigation: Arrow keys to move, Home to reset view"))
	return b.String()
}

// renderCanvas paints the full layout onto a fresh canvas: edges first so
// labels sit on top of them.
func (m AnalysisModel) renderCanvas() *graphCanvas {
	canvas := newGraphCanvas(m.layout.MaxWidth+1, m.layout.MaxHeight+1)

	position := make(map[string]graph.Position, len(m.layout.Positions))
	for _, pos := range m.layout.Positions {
		position[pos.Node] = pos
	}
	conflicted := make(map[string]bool, len(m.conflicts)*2)
	for _, c := range m.conflicts {
		conflicted[c.PackageA] = true
		conflicted[c.PackageB] = true
	}

	for _, e := range m.graph.Edges() {
		from, okF := position[m.graph.Name(e.From)]
		to, okT := position[m.graph.Name(e.To)]
		if !okF || !okT {
			continue
		}
		class := cellEdgeDirect
		if e.Kind == graph.EdgeTransitive {
			class = cellEdgeTransitive
		}
		canvas.line(labelCenter(from), from.Y, labelCenter(to), to.Y, class)
	}

	for _, pos := range m.layout.Positions {
		class := cellNodeTransitive
		if m.direct[pos.Node] {
			class = cellNodeDirect
		}
		if conflicted[pos.Node] {
			class = cellNodeConflict
		}
		canvas.label(pos.X, pos.Y, pos.Node, class)
	}

	return canvas
}

// labelCenter is the x coordinate of the middle of a node's label.
func labelCenter(pos graph.Position) int {
	return pos.X + len(pos.Node)/2
}

// =============================================================================
// Canvas
// =============================================================================

// graphCanvas is a rune grid with a parallel style class per cell.
type graphCanvas struct {
	w, h  int
	runes [][]rune
	class [][]uint8
}

func newGraphCanvas(w, h int) *graphCanvas {
	c := &graphCanvas{w: w, h: h}
	c.runes = make([][]rune, h)
	c.class = make([][]uint8, h)
	for y := range c.runes {
		c.runes[y] = make([]rune, w)
		c.class[y] = make([]uint8, w)
		for x := range c.runes[y] {
			c.runes[y][x] = ' '
		}
	}
	return c
}

// set paints one cell. Node cells are never overwritten by edge cells.
func (c *graphCanvas) set(x, y int, ch rune, class uint8) {
	if x < 0 || x >= c.w || y < 0 || y >= c.h {
		return
	}
	if c.class[y][x] >= cellNodeDirect && class < cellNodeDirect {
		return
	}
	c.runes[y][x] = ch
	c.class[y][x] = class
}

// line draws a dotted line between two cells using Bresenham stepping.
func (c *graphCanvas) line(x1, y1, x2, y2 int, class uint8) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)
	sx := 1
	if x1 > x2 {
		sx = -1
	}
	sy := 1
	if y1 > y2 {
		sy = -1
	}
	err := dx + dy

	x, y := x1, y1
	for {
		c.set(x, y, '·', class)
		if x == x2 && y == y2 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// label writes text starting at (x, y).
func (c *graphCanvas) label(x, y int, text string, class uint8) {
	for i, ch := range text {
		c.set(x+i, y, ch, class)
	}
}

// viewport renders the window of the canvas at (offsetX, offsetY), batching
// runs of equally-styled cells so each row stays one string.
func (c *graphCanvas) viewport(offsetX, offsetY, w, h int) string {
	offsetX = clampOffset(offsetX, c.w, w)
	offsetY = clampOffset(offsetY, c.h, h)

	var b strings.Builder
	for y := offsetY; y < offsetY+h && y < c.h; y++ {
		if y > offsetY {
			b.WriteString("\n")
		}
		var run []rune
		runClass := cellEmpty
		flush := func() {
			if len(run) == 0 {
				return
			}
			text := string(run)
			if style, ok := cellStyles[runClass]; ok {
				text = style.Render(text)
			}
			b.WriteString(text)
			run = run[:0]
		}
		for x := offsetX; x < offsetX+w && x < c.w; x++ {
			if c.class[y][x] != runClass {
				flush()
				runClass = c.class[y][x]
			}
			run = append(run, c.runes[y][x])
		}
		flush()
	}
	return b.String()
}

// clampOffset keeps the viewport inside the canvas.
func clampOffset(offset, size, view int) int {
	max := size - view
	if max < 0 {
		max = 0
	}
	if offset > max {
		return max
	}
	if offset < 0 {
		return 0
	}
	return offset
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
