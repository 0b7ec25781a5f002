// Package graph builds and analyzes dependency graphs over declared conda
// environments.
//
// # Overview
//
// Given the packages declared in an environment and a best-effort mapping
// from package name to dependency specification strings, the package
// produces a [DependencyGraph] annotated with direct and transitive edges,
// a list of version-constraint conflicts, and a layered 2-D layout for
// terminal or image rendering.
//
// The dependency mapping is expected to be incomplete: registries time out,
// local metadata is missing, spec strings are malformed. Every operation in
// this package is total over such input. Missing or unparseable data means
// an edge is simply absent, never an error.
//
// # Building
//
// [Build] is the main entry point:
//
//	g := graph.Build(env.Packages(), depMap)
//	conflicts := graph.DetectConflicts(env.Packages(), depMap)
//	layout := g.Layout()
//
// Nodes are stored in an arena: an append-only name vector plus a name to
// index map. Edges reference [NodeIndex] values, never names, so identity
// stays unambiguous and edge operations avoid re-hashing.
//
// # Constraint Checking
//
// [ParseDependency] splits a free-form spec string such as "numpy>=1.20.0"
// into a name and a constraint. [Compatible] decides whether two constraints
// admit a common version by testing a small fixed probe set of versions
// against both. The probe set is a deliberate heuristic: it can miss
// intersections that lie outside the probes, and downstream conflict counts
// are defined relative to it. See [Compatible] for details.
//
// # Concurrency
//
// DependencyGraph instances are not safe for concurrent mutation. All
// analysis functions are pure over already-built graphs and can run
// concurrently on a graph that is no longer being modified.
package graph
