package graph

import (
	"github.com/condagraph/condagraph/pkg/conda"
)

// Build constructs the annotated dependency graph for an environment.
//
// One node is inserted per package, preserving the given order. For every
// spec in depMap a direct edge is added when the parsed dependency name
// matches an existing node. Finally, transitive reachability is computed
// over the direct edges alone, and a transitive edge is inserted for every
// reachable pair that is neither a direct dependency nor the package itself.
//
// Build never fails. Packages with duplicate names after the first,
// unparseable specs, and dependency names without a matching package are
// silently skipped; partial dependency data is expected input, not an
// error. depMap keys that name no package contribute nothing.
func Build(packages []conda.Package, depMap map[string][]string) *DependencyGraph {
	g := New()

	for _, p := range packages {
		g.AddNode(p.Name) //nolint:errcheck // duplicates and empties are skipped
	}

	// Direct edges, iterated in package order so edge order is stable
	// regardless of map iteration.
	for _, p := range packages {
		from, ok := g.Index(p.Name)
		if !ok {
			continue
		}
		for _, spec := range depMap[p.Name] {
			dep := ParseDependency(spec)
			if dep.Name == "" {
				continue
			}
			to, ok := g.Index(dep.Name)
			if !ok || g.HasEdge(from, to) {
				continue
			}
			g.AddEdge(from, to, EdgeDirect) //nolint:errcheck // membership checked above
		}
	}

	// Transitive edges come from reachability over the direct relation only,
	// so earlier synthesized edges never feed back into the closure.
	adj := g.directAdjacency()
	for from := range g.names {
		reach := reachableFrom(adj, NodeIndex(from))
		reach[from] = false
		for to := range g.names {
			if !reach[to] || g.HasEdge(NodeIndex(from), NodeIndex(to)) {
				continue
			}
			g.AddEdge(NodeIndex(from), NodeIndex(to), EdgeTransitive) //nolint:errcheck
		}
	}

	return g
}
