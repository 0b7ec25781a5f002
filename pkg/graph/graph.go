package graph

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

var (
	// ErrInvalidNodeName is returned by [DependencyGraph.AddNode] when the
	// name is empty. All nodes must have non-empty names.
	ErrInvalidNodeName = errors.New("node name must not be empty")

	// ErrDuplicateNode is returned by [DependencyGraph.AddNode] when a node
	// with the same name already exists. Names are unique per graph.
	ErrDuplicateNode = errors.New("duplicate node name")

	// ErrUnknownSourceNode is returned by [DependencyGraph.AddEdge] when the
	// From index does not reference an existing node.
	ErrUnknownSourceNode = errors.New("unknown source node")

	// ErrUnknownTargetNode is returned by [DependencyGraph.AddEdge] when the
	// To index does not reference an existing node.
	ErrUnknownTargetNode = errors.New("unknown target node")

	// ErrDuplicateEdge is returned by [DependencyGraph.AddEdge] when an edge
	// for the same ordered pair already exists. At most one edge connects any
	// ordered pair of nodes, regardless of kind.
	ErrDuplicateEdge = errors.New("duplicate edge")
)

// NodeIndex is an opaque handle for a node, assigned at insertion time and
// stable for the lifetime of the graph.
type NodeIndex int

// EdgeKind distinguishes declared dependencies from synthesized reachability
// edges.
type EdgeKind uint8

const (
	// EdgeDirect marks an edge for a dependency explicitly declared by the
	// source package.
	EdgeDirect EdgeKind = iota
	// EdgeTransitive marks an edge synthesized for a package reachable only
	// through intermediates, with no direct declaration.
	EdgeTransitive
)

// String returns "direct" or "transitive".
func (k EdgeKind) String() string {
	if k == EdgeTransitive {
		return "transitive"
	}
	return "direct"
}

// Edge is a directed connection between two nodes. Endpoints are stored as
// indices into the graph's node arena.
type Edge struct {
	From NodeIndex
	To   NodeIndex
	Kind EdgeKind
}

type edgeKey struct {
	from, to NodeIndex
}

// DependencyGraph is a directed graph over package names.
//
// Nodes live in an append-only arena: the name vector is indexed by
// [NodeIndex] and a reverse map resolves names to indices. Edges store
// indices only. The zero value is not usable, use [New] or [Build].
//
// DependencyGraph is not safe for concurrent mutation.
type DependencyGraph struct {
	names    []string
	index    map[string]NodeIndex
	edges    []Edge
	outgoing [][]NodeIndex
	present  map[edgeKey]struct{}
}

// New creates an empty graph.
func New() *DependencyGraph {
	return &DependencyGraph{
		index:   make(map[string]NodeIndex),
		present: make(map[edgeKey]struct{}),
	}
}

// AddNode inserts a node and returns its index. Returns ErrInvalidNodeName
// for an empty name or ErrDuplicateNode if the name is already present.
func (g *DependencyGraph) AddNode(name string) (NodeIndex, error) {
	if name == "" {
		return 0, ErrInvalidNodeName
	}
	if _, exists := g.index[name]; exists {
		return 0, ErrDuplicateNode
	}
	idx := NodeIndex(len(g.names))
	g.names = append(g.names, name)
	g.index[name] = idx
	g.outgoing = append(g.outgoing, nil)
	return idx, nil
}

// AddEdge inserts a directed edge between two existing nodes. Returns
// ErrUnknownSourceNode or ErrUnknownTargetNode when an endpoint is out of
// range, and ErrDuplicateEdge when the ordered pair is already connected.
// Use [DependencyGraph.HasEdge] to check membership first when duplicates
// are expected input rather than a caller bug.
func (g *DependencyGraph) AddEdge(from, to NodeIndex, kind EdgeKind) error {
	if !g.valid(from) {
		return ErrUnknownSourceNode
	}
	if !g.valid(to) {
		return ErrUnknownTargetNode
	}
	key := edgeKey{from, to}
	if _, exists := g.present[key]; exists {
		return ErrDuplicateEdge
	}
	g.edges = append(g.edges, Edge{From: from, To: to, Kind: kind})
	g.outgoing[from] = append(g.outgoing[from], to)
	g.present[key] = struct{}{}
	return nil
}

func (g *DependencyGraph) valid(i NodeIndex) bool {
	return i >= 0 && int(i) < len(g.names)
}

// HasEdge reports whether an edge of any kind connects the ordered pair.
func (g *DependencyGraph) HasEdge(from, to NodeIndex) bool {
	_, ok := g.present[edgeKey{from, to}]
	return ok
}

// Index returns the node index for a name.
func (g *DependencyGraph) Index(name string) (NodeIndex, bool) {
	idx, ok := g.index[name]
	return idx, ok
}

// Name returns the name stored at the index, or "" when out of range.
func (g *DependencyGraph) Name(i NodeIndex) string {
	if !g.valid(i) {
		return ""
	}
	return g.names[i]
}

// Nodes returns all node names in insertion order.
func (g *DependencyGraph) Nodes() []string {
	return slices.Clone(g.names)
}

// Edges returns a copy of all edges in insertion order.
func (g *DependencyGraph) Edges() []Edge {
	return slices.Clone(g.edges)
}

// NodeCount returns the number of nodes.
func (g *DependencyGraph) NodeCount() int { return len(g.names) }

// EdgeCount returns the number of edges of both kinds.
func (g *DependencyGraph) EdgeCount() int { return len(g.edges) }

// Dependencies returns the targets of all outgoing edges from the node,
// direct and transitive, in insertion order. The returned slice is a
// read-only view.
func (g *DependencyGraph) Dependencies(i NodeIndex) []NodeIndex {
	if !g.valid(i) {
		return nil
	}
	return g.outgoing[i]
}

// OutDegree returns the number of outgoing edges from the node.
func (g *DependencyGraph) OutDegree(i NodeIndex) int {
	if !g.valid(i) {
		return 0
	}
	return len(g.outgoing[i])
}

// DirectDeps returns the set of package names declared in the environment.
// Every node is declared, since phantom nodes are never inserted for
// dependency names without a matching package; renderers use this set to
// style declared packages apart from any synthesized ones.
func (g *DependencyGraph) DirectDeps() map[string]bool {
	set := make(map[string]bool, len(g.names))
	for _, name := range g.names {
		set[name] = true
	}
	return set
}

// Describe renders the graph as text: one quoted node name per line,
// followed by one edge per line in the form "A" -> "B". The output is
// deterministic and suitable as input for DOT-style serializers.
func (g *DependencyGraph) Describe() string {
	var b strings.Builder
	for _, name := range g.names {
		fmt.Fprintf(&b, "%q\n", name)
	}
	for _, e := range g.edges {
		fmt.Fprintf(&b, "%q -> %q\n", g.names[e.From], g.names[e.To])
	}
	return b.String()
}
