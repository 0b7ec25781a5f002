package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/condagraph/condagraph/pkg/analysis"
	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/deps"
	"github.com/condagraph/condagraph/pkg/graph"
	"github.com/condagraph/condagraph/pkg/observability"
)

// Runner executes the pipeline against one cache backend. It holds no
// per-run state, so one Runner can serve many Execute calls with
// different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner over the given cache backend. A nil backend
// disables caching; a nil logger falls back to the default logger.
func NewRunner(backend cache.Cache, logger *log.Logger) *Runner {
	if backend == nil {
		backend = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: backend, Logger: logger}
}

// Execute runs all pipeline stages for the given environment file.
func (r *Runner) Execute(ctx context.Context, envFile string, opts Options) (*Result, error) {
	opts = r.applyLogger(opts).WithDefaults()

	hooks := observability.Analysis()
	hooks.OnAnalyzeStart(ctx, envFile)
	start := time.Now()

	result, err := r.execute(ctx, envFile, opts)

	count := 0
	if result != nil {
		count = len(result.Packages)
	}
	hooks.OnAnalyzeComplete(ctx, envFile, count, time.Since(start), err)
	return result, err
}

func (r *Runner) execute(ctx context.Context, envFile string, opts Options) (*Result, error) {
	logger := opts.Logger
	stats := Stats{}

	parseStart := time.Now()
	env, err := conda.ParseFile(envFile)
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	packages := env.Packages()
	if opts.Channel != "" {
		for i := range packages {
			if packages[i].Channel == "" {
				packages[i].Channel = opts.Channel
			}
		}
	}
	stats.PackageCount = len(packages)
	stats.ParseTime = time.Since(parseStart)
	logger.Info("parsed environment",
		"file", envFile,
		"packages", stats.PackageCount,
		"duration", stats.ParseTime,
	)

	resolveStart := time.Now()
	resolver := deps.NewResolver(r.providers(opts), opts.resolveOptions())
	depMap := resolver.Resolve(ctx, packages)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, specs := range depMap {
		if len(specs) > 0 {
			stats.ResolvedCount++
		}
	}
	stats.ResolveTime = time.Since(resolveStart)
	logger.Info("resolved dependencies",
		"source", resolver.Source(),
		"resolved", stats.ResolvedCount,
		"duration", stats.ResolveTime,
	)

	if opts.Enrich {
		enrichStart := time.Now()
		deps.NewEnricher(r.Cache, opts.enrichOptions()).Enrich(ctx, packages)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		stats.EnrichTime = time.Since(enrichStart)
		logger.Info("enriched packages",
			"packages", len(packages),
			"duration", stats.EnrichTime,
		)
	}

	analyzeStart := time.Now()
	g := graph.Build(packages, depMap)
	conflicts := graph.DetectConflicts(packages, depMap)
	report := analysis.Analyze(envName(env, envFile), packages, depMap, conflicts)
	stats.NodeCount = g.NodeCount()
	stats.EdgeCount = g.EdgeCount()
	stats.ConflictCount = len(conflicts)
	stats.AnalyzeTime = time.Since(analyzeStart)
	logger.Info("analyzed environment",
		"nodes", stats.NodeCount,
		"edges", stats.EdgeCount,
		"conflicts", stats.ConflictCount,
		"duration", stats.AnalyzeTime,
	)

	return &Result{
		Env:       env,
		Packages:  packages,
		DepMap:    depMap,
		Graph:     g,
		Conflicts: conflicts,
		Report:    report,
		Stats:     stats,
	}, nil
}

// providers returns the chain for a run: the injected one when set,
// otherwise the default chain over the runner's cache.
func (r *Runner) providers(opts Options) []deps.Provider {
	if len(opts.Providers) > 0 {
		return opts.Providers
	}
	return deps.DefaultProviders(opts.MetaDir, r.Cache, opts.resolveOptions())
}

// applyLogger fills the options logger from the runner when unset.
func (r *Runner) applyLogger(opts Options) Options {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	return opts
}

// Close releases the cache backend.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// envName prefers the name declared in the environment file and falls back
// to the file name without its extension.
func envName(env *conda.Environment, envFile string) string {
	if env.Name != "" {
		return env.Name
	}
	base := filepath.Base(envFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
