// Package pipeline runs the full environment analysis in four stages:
//
//  1. Parse: read the environment file into a package list
//  2. Resolve: build the dependency map through the provider chain
//  3. Enrich: fill latest versions and download sizes from the registries
//  4. Analyze: build the graph, detect conflicts, assemble the report
//
// Enrichment is skipped unless requested; the other stages always run.
// The CLI commands and the HTTP server both execute through a [Runner] so
// their results stay identical for the same options.
//
// # Usage
//
//	runner := pipeline.NewRunner(backend, logger)
//	defer runner.Close()
//
//	result, err := runner.Execute(ctx, "environment.yml", pipeline.Options{
//		Deep:   true,
//		Enrich: true,
//	})
//	if err != nil {
//		return err
//	}
//	fmt.Println(result.Graph.Describe())
package pipeline

import (
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/deps"
	"github.com/condagraph/condagraph/pkg/graph"
)

// Options configures a pipeline run.
type Options struct {
	MetaDir  string        // conda-meta directory with installed-package records ("" = skip)
	Channel  string        // fallback channel for packages that declare none
	Deep     bool          // consult the network registries during resolution
	Enrich   bool          // fill latest versions and sizes from the registries
	Refresh  bool          // bypass cached registry responses
	Workers  int           // concurrent registry lookups (default: 8)
	CacheTTL time.Duration // registry cache duration (default: 24h)

	// Logger receives stage progress. The runner fills it in when unset.
	Logger *log.Logger

	// Providers overrides the default provider chain. Mainly for tests.
	Providers []deps.Provider
}

// WithDefaults returns a copy of Options with zero values replaced by
// defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = deps.DefaultWorkers
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = deps.DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return opts
}

// resolveOptions converts Options for the resolve stage. Without Deep the
// network registries are excluded, so resolution runs on local metadata
// and the static table alone.
func (o Options) resolveOptions() deps.Options {
	return deps.Options{
		Workers:  o.Workers,
		CacheTTL: o.CacheTTL,
		Refresh:  o.Refresh,
		Offline:  !o.Deep,
		Logger:   o.logf(),
	}
}

// enrichOptions converts Options for the enrich stage. Enrichment always
// talks to the registries; callers gate the stage itself via Enrich.
func (o Options) enrichOptions() deps.Options {
	return deps.Options{
		Workers:  o.Workers,
		CacheTTL: o.CacheTTL,
		Refresh:  o.Refresh,
		Logger:   o.logf(),
	}
}

// logf adapts the stage logger to the callback the lookup workers expect.
func (o Options) logf() func(string, ...any) {
	logger := o.Logger
	if logger == nil {
		return func(string, ...any) {}
	}
	return func(msg string, args ...any) {
		logger.Warnf(msg, args...)
	}
}

// DefaultMetaDir returns the conda-meta directory of the active conda
// environment, or "" when none is active.
func DefaultMetaDir() string {
	prefix := os.Getenv("CONDA_PREFIX")
	if prefix == "" {
		return ""
	}
	return filepath.Join(prefix, "conda-meta")
}

// Result bundles the outputs of one pipeline run.
type Result struct {
	Env       *conda.Environment     // parsed environment descriptor
	Packages  []conda.Package        // package list, enriched in place when enrichment ran
	DepMap    map[string][]string    // package name -> resolved dependency specs
	Graph     *graph.DependencyGraph // dependency graph over Packages
	Conflicts []graph.ConflictRecord // pairwise version-constraint conflicts
	Report    *analysis.Report       // assembled analysis report
	Stats     Stats                  // stage timings and counts
}

// Stats records counts and per-stage timings of a run.
type Stats struct {
	PackageCount  int // packages declared in the environment
	ResolvedCount int // dependency-map entries with at least one spec
	NodeCount     int // graph nodes
	EdgeCount     int // graph edges
	ConflictCount int // detected conflicts

	ParseTime   time.Duration
	ResolveTime time.Duration
	EnrichTime  time.Duration
	AnalyzeTime time.Duration
}
