// Package deps resolves the direct dependencies of environment packages.
//
// # Overview
//
// A declared environment only lists its top-level packages; the dependency
// map that drives graph construction has to come from somewhere else. This
// package tries several sources per package, in order, and takes the first
// answer:
//
//  1. conda-meta JSON files from an installed environment prefix (offline,
//     most accurate when available)
//  2. The Anaconda.org API (latest version's depends specs)
//  3. The PyPI API, for packages from the pip section
//  4. A small table of well-known packages, as a last resort
//
// A package that fails every source simply gets no entry. Missing dependency
// data is normal and never an error; the graph is built from whatever was
// found.
//
// # Resolving
//
// Use [NewResolver] with a provider chain, typically from [DefaultProviders]:
//
//	providers := deps.DefaultProviders("", backend, opts)
//	resolver := deps.NewResolver(providers, opts)
//	depMap := resolver.Resolve(ctx, env.Packages())
//
// Resolution runs lookups through a worker pool; [Options.Workers] bounds the
// number of upstream requests in flight.
//
// # Dependency Specs
//
// Resolved entries keep their version constraints where the source provides
// them, reformatted to attached form ("numpy>=1.16.6,<2.0a0"). Constraint
// checking downstream depends on that shape; sources that report plain names
// contribute plain names.
//
// # Enrichment
//
// [Enricher.Enrich] fills Size, LatestVersion, and IsOutdated on packages
// from the Anaconda.org and PyPI APIs. Enrichment failures leave fields
// zero and never fail the run.
package deps
