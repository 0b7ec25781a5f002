package graph

import "testing"

func positionOf(t *testing.T, l Layout, node string) Position {
	t.Helper()
	for _, p := range l.Positions {
		if p.Node == node {
			return p
		}
	}
	t.Fatalf("node %s not placed: %v", node, l.Positions)
	return Position{}
}

// Chain layout:
//
//	layer 0: python          (no outgoing edges)
//	layer 1: numpy           (depends only on python)
//	layer 2: pandas          (depends on python and numpy)
func TestLayout_Chain(t *testing.T) {
	g := Build(pkgs("python", "numpy", "pandas"), map[string][]string{
		"numpy":  {"python"},
		"pandas": {"python", "numpy"},
	})

	l := g.Layout()
	if len(l.Positions) != 3 {
		t.Fatalf("positions = %d, want 3", len(l.Positions))
	}

	python := positionOf(t, l, "python")
	numpy := positionOf(t, l, "numpy")
	pandas := positionOf(t, l, "pandas")

	if python.X != 2 || python.Y != 2 {
		t.Errorf("python at (%d, %d), want (2, 2)", python.X, python.Y)
	}
	if numpy.Y != 6 {
		t.Errorf("numpy.Y = %d, want 6", numpy.Y)
	}
	if pandas.Y != 10 {
		t.Errorf("pandas.Y = %d, want 10", pandas.Y)
	}
}

func TestLayout_SlotSpacing(t *testing.T) {
	// Three leaves share layer 0, one slot each.
	g := Build(pkgs("a", "b", "c"), nil)

	l := g.Layout()
	a := positionOf(t, l, "a")
	b := positionOf(t, l, "b")
	c := positionOf(t, l, "c")

	if a.X != 2 || b.X != 17 || c.X != 32 {
		t.Errorf("slots = %d, %d, %d, want 2, 17, 32", a.X, b.X, c.X)
	}
	if a.Y != 2 || b.Y != 2 || c.Y != 2 {
		t.Errorf("leaves should share Y=2, got %d, %d, %d", a.Y, b.Y, c.Y)
	}
	if want := 32 + len("c"); l.MaxWidth != want {
		t.Errorf("MaxWidth = %d, want %d", l.MaxWidth, want)
	}
	if l.MaxHeight != 3 {
		t.Errorf("MaxHeight = %d, want 3", l.MaxHeight)
	}
}

// A pure cycle has no leaves, so the deadlock path must fire and place all
// nodes in a single forced layer instead of looping.
func TestLayout_CycleForcePlaced(t *testing.T) {
	g := Build(pkgs("a", "b", "c"), map[string][]string{
		"a": {"b"},
		"b": {"c"},
		"c": {"a"},
	})

	l := g.Layout()
	if len(l.Positions) != 3 {
		t.Fatalf("positions = %d, want all 3 placed", len(l.Positions))
	}
	for _, p := range l.Positions {
		if p.Y != 2 {
			t.Errorf("%s.Y = %d, want 2 (single forced layer)", p.Node, p.Y)
		}
	}
}

func TestLayout_BoundsCoverAllNodes(t *testing.T) {
	g := Build(pkgs("app", "lib", "base", "other"), map[string][]string{
		"app": {"lib"},
		"lib": {"base"},
	})

	l := g.Layout()
	if len(l.Positions) != 4 {
		t.Fatalf("positions = %d, want 4", len(l.Positions))
	}
	for _, p := range l.Positions {
		if p.X < 0 || p.Y < 0 {
			t.Errorf("%s at negative coordinates (%d, %d)", p.Node, p.X, p.Y)
		}
		if p.X > l.MaxWidth {
			t.Errorf("%s.X = %d exceeds MaxWidth %d", p.Node, p.X, l.MaxWidth)
		}
		if p.Y >= l.MaxHeight {
			t.Errorf("%s.Y = %d reaches MaxHeight %d", p.Node, p.Y, l.MaxHeight)
		}
	}
}

func TestLayout_Empty(t *testing.T) {
	l := New().Layout()
	if len(l.Positions) != 0 || l.MaxWidth != 0 || l.MaxHeight != 0 {
		t.Errorf("empty graph layout = %+v, want zero value", l)
	}
}

// Layout reflects the current edge structure, never a cached one.
func TestLayout_RecomputedAfterMutation(t *testing.T) {
	g := New()
	a, _ := g.AddNode("a")
	b, _ := g.AddNode("b")

	before := g.Layout()
	if positionOf(t, before, "a").Y != positionOf(t, before, "b").Y {
		t.Fatal("two leaves should share a layer")
	}

	g.AddEdge(a, b, EdgeDirect)
	after := g.Layout()
	if positionOf(t, after, "a").Y == positionOf(t, after, "b").Y {
		t.Error("after adding a -> b the nodes should land in different layers")
	}
}
