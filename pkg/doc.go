// Package pkg provides the core libraries for Condagraph environment analysis.
//
// # Overview
//
// Condagraph inspects conda environment files, resolves the dependency
// relationships between the declared packages, and reports on conflicts,
// outdated pins, and known vulnerabilities. The pkg directory is organized
// into four main areas:
//
//  1. Domain logic - environment parsing, graph construction, analysis
//  2. Integrations - external registry and advisory API clients
//  3. Infrastructure - caching, persistence, observability, errors
//  4. Orchestration - the pipeline shared by every command
//
// # Architecture
//
// The typical data flow through Condagraph:
//
//	environment.yml / environment.json
//	         ↓
//	    [conda] package (parse file, extract packages)
//	         ↓
//	    [deps] package (resolve dependency specs: conda-meta → Anaconda → PyPI → static)
//	         ↓
//	    [graph] package (build graph, transitive closure, conflicts, layout)
//	         ↓
//	    [analysis] package (report + recommendations)
//	         ↓
//	    [export] package (text/JSON/Markdown/HTML/CSV, DOT/SVG/PNG)
//
// # Quick Start
//
// Run the full pipeline over an environment file:
//
//	import (
//	    "context"
//
//	    "github.com/charmbracelet/log"
//
//	    "github.com/condagraph/condagraph/pkg/cache"
//	    "github.com/condagraph/condagraph/pkg/pipeline"
//	)
//
//	backend, _ := cache.NewFileCache("/tmp/condagraph")
//	runner := pipeline.NewRunner(backend, log.Default())
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), "environment.yml", pipeline.Options{
//	    Deep:   true,
//	    Enrich: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, rec := range result.Report.Recommendations {
//	    fmt.Println(rec)
//	}
//
// # Main Packages
//
// ## Domain Logic
//
// [conda] - Environment file models and parsing. Reads environment.yml and
// environment.json, flattens conda and pip dependencies into packages, and
// parses conda spec strings (channel::name=version=build).
//
// [deps] - Dependency resolution and metadata enrichment. A provider chain
// (local conda-meta metadata, the Anaconda API, the PyPI API, a static
// fallback table) feeds a worker-pool resolver; the enricher fills latest
// versions, outdated flags, and sizes.
//
// [graph] - The dependency graph core: direct and transitive edges,
// version-constraint conflict detection, and the layered grid layout used
// by the terminal UI and the HTTP server.
//
// [vuln] - Vulnerability scanning against a curated offline table, the OSV
// API, the Safety DB feed, and a version-gap heuristic.
//
// [analysis] - Report assembly: totals, pinned/outdated counts, conflicts,
// recommendations, and redundant-package detection.
//
// ## External Integrations
//
// [integrations] - Shared cache-through HTTP client plus clients for
// Anaconda.org, PyPI, OSV, and the Safety DB feed.
//
// ## Infrastructure
//
// [cache] - Cache interface with file, Redis, and null backends, response
// keying, and retry with backoff.
//
// [history] - Snapshot persistence for past analyses with MongoDB and
// local-file stores, plus snapshot diffing.
//
// [observability] - Hook interfaces (analysis, cache, HTTP) with no-op
// defaults so callers can plug in metrics without new dependencies here.
//
// [errors] - Coded errors and input validation shared across packages.
//
// [buildinfo] - Version metadata injected at build time.
//
// ## Orchestration
//
// [export] - Report writers (text, JSON, Markdown, HTML, CSV) and graph
// artifacts (DOT, SVG, PNG via Graphviz).
//
// [pipeline] - The parse → resolve → enrich → analyze pipeline shared by
// the CLI commands and the HTTP server.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...            # All tests
//	go test ./pkg/graph/...      # Specific package
//	go test -run Example         # Examples only
//
// [conda]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/conda
// [deps]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/deps
// [graph]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/graph
// [vuln]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/vuln
// [analysis]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/analysis
// [integrations]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/integrations
// [cache]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/cache
// [history]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/history
// [observability]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/buildinfo
// [export]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/export
// [pipeline]: https://pkg.go.dev/github.com/condagraph/condagraph/pkg/pipeline
package pkg
