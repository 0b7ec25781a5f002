package deps

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/graph"
	"github.com/condagraph/condagraph/pkg/observability"
)

// Resolver looks up direct dependencies for a set of packages through a
// provider chain.
type Resolver struct {
	providers []Provider
	opts      Options
}

// NewResolver creates a Resolver. Providers are consulted in order per
// package; the first one that answers wins.
func NewResolver(providers []Provider, opts Options) *Resolver {
	return &Resolver{providers: providers, opts: opts.WithDefaults()}
}

// Source returns the comma-joined provider names, for logging.
func (r *Resolver) Source() string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return strings.Join(names, ",")
}

type lookupResult struct {
	name string
	deps []string
}

// Resolve returns the dependency map for packages. Lookups run through a
// worker pool; packages that fail every provider get an empty entry.
// Dependencies discovered along the way that have no entry of their own are
// backfilled from the static table where possible.
//
// Resolve never fails: on context cancellation it returns whatever was
// resolved so far.
func (r *Resolver) Resolve(ctx context.Context, packages []conda.Package) map[string][]string {
	hooks := observability.Analysis()
	hooks.OnResolveStart(ctx, r.Source(), len(packages))
	start := time.Now()

	jobs := make(chan conda.Package)
	results := make(chan lookupResult)

	var wg sync.WaitGroup
	for range r.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pkg := range jobs {
				if ctx.Err() != nil {
					results <- lookupResult{name: pkg.Name}
					continue
				}
				results <- lookupResult{name: pkg.Name, deps: r.lookup(ctx, pkg)}
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, pkg := range packages {
			jobs <- pkg
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	depMap := make(map[string][]string, len(packages))
	resolved := 0
	for res := range results {
		depMap[res.name] = res.deps
		if len(res.deps) > 0 {
			resolved++
		}
	}

	fillKnownDeps(depMap)

	hooks.OnResolveComplete(ctx, r.Source(), resolved, time.Since(start), ctx.Err())
	return depMap
}

// lookup walks the provider chain and returns the first answer, normalized.
func (r *Resolver) lookup(ctx context.Context, pkg conda.Package) []string {
	for _, p := range r.providers {
		deps, err := p.Lookup(ctx, pkg, r.opts.Refresh)
		if err != nil {
			if !errors.Is(err, ErrNotApplicable) {
				r.opts.Logger("dependency lookup failed: %s via %s: %v", pkg.Name, p.Name(), err)
			}
			continue
		}
		return normalizeSpecs(deps)
	}
	r.opts.Logger("could not determine dependencies for %s", pkg.Name)
	return nil
}

// normalizeSpecs reformats and deduplicates raw dependency specs,
// preserving order.
func normalizeSpecs(specs []string) []string {
	seen := make(map[string]bool, len(specs))
	out := make([]string, 0, len(specs))
	for _, s := range specs {
		n := normalizeSpec(s)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// normalizeSpec reformats one raw spec to attached form. conda depends
// entries separate name, constraint, and build with spaces
// ("numpy >=1.16.6,<2.0a0" or "python_abi 3.9.* *_cp39"); constraint
// checking downstream expects "numpy>=1.16.6,<2.0a0". A second field that
// doesn't start with a comparison operator is an exact version or build
// pattern and is dropped, leaving the bare name.
func normalizeSpec(spec string) string {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return ""
	}
	name := fields[0]
	if len(fields) >= 2 && startsWithOperator(fields[1]) {
		return name + fields[1]
	}
	return name
}

func startsWithOperator(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case '<', '>', '=', '~', '^':
		return true
	}
	return false
}

// fillKnownDeps gives discovered dependencies that resolved to nothing a
// static-table entry when one exists, keeping chains like
// app -> pandas -> numpy connected when only the top level was declared.
func fillKnownDeps(depMap map[string][]string) {
	names := make([]string, 0, len(depMap))
	for name := range depMap {
		names = append(names, name)
	}
	for _, name := range names {
		for _, spec := range depMap[name] {
			dep := graph.ParseDependency(spec).Name
			if dep == "" || len(depMap[dep]) > 0 {
				continue
			}
			if known := KnownDeps(dep); known != nil {
				depMap[dep] = known
			}
		}
	}
}
