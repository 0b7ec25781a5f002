package graph

// directAdjacency snapshots the adjacency lists of the direct-edge relation.
// Transitive edges are excluded so reachability is always computed over the
// raw declared dependencies.
func (g *DependencyGraph) directAdjacency() [][]NodeIndex {
	adj := make([][]NodeIndex, len(g.names))
	for _, e := range g.edges {
		if e.Kind == EdgeDirect {
			adj[e.From] = append(adj[e.From], e.To)
		}
	}
	return adj
}

// reachableFrom marks every node reachable from start by depth-first search.
// The visited set doubles as the cycle guard, so traversal terminates on
// cyclic graphs. The start node itself ends up marked and callers clear it.
func reachableFrom(adj [][]NodeIndex, start NodeIndex) []bool {
	visited := make([]bool, len(adj))
	var dfs func(NodeIndex)
	dfs = func(n NodeIndex) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, t := range adj[n] {
			dfs(t)
		}
	}
	dfs(start)
	return visited
}

// Closure computes, for every package, the set of packages reachable over
// direct dependency edges. A package is never part of its own closure, even
// when a cycle passes through it, and a package with no outgoing direct
// edges has an empty set. Names within each set follow node insertion order.
//
// The result is recomputed from the direct edges on every call, so running
// it twice on an unchanged graph yields identical sets.
func (g *DependencyGraph) Closure() map[string][]string {
	adj := g.directAdjacency()
	out := make(map[string][]string, len(g.names))
	for i, name := range g.names {
		visited := reachableFrom(adj, NodeIndex(i))
		visited[i] = false
		out[name] = g.collect(visited)
	}
	return out
}

// TransitiveDeps returns the packages reachable from name through at least
// one intermediate: the closure minus the direct dependencies. Returns nil
// for unknown names.
func (g *DependencyGraph) TransitiveDeps(name string) []string {
	start, ok := g.Index(name)
	if !ok {
		return nil
	}
	adj := g.directAdjacency()
	visited := reachableFrom(adj, start)
	visited[start] = false
	for _, direct := range adj[start] {
		visited[direct] = false
	}
	return g.collect(visited)
}

func (g *DependencyGraph) collect(visited []bool) []string {
	var names []string
	for i, ok := range visited {
		if ok {
			names = append(names, g.names[i])
		}
	}
	return names
}
