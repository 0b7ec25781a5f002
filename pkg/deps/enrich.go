package deps

import (
	"context"
	"sync"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations/anaconda"
	"github.com/condagraph/condagraph/pkg/integrations/pypi"
)

// Enricher fills in latest-version and size metadata from the package
// registries.
type Enricher struct {
	anaconda anacondaLookup
	pypi     pypiLookup
	opts     Options
}

// NewEnricher creates an Enricher backed by the given cache.
func NewEnricher(backend cache.Cache, opts Options) *Enricher {
	opts = opts.WithDefaults()
	return &Enricher{
		anaconda: anaconda.NewClient(backend, opts.CacheTTL),
		pypi:     pypi.NewClient(backend, opts.CacheTTL),
		opts:     opts,
	}
}

// Enrich updates packages in place with the latest published version, the
// outdated flag, and artifact size where the environment didn't carry one.
// Lookups run through a worker pool; individual failures are logged and
// skipped, so Enrich never fails a run. A no-op in offline mode.
func (e *Enricher) Enrich(ctx context.Context, packages []conda.Package) {
	if e.opts.Offline {
		return
	}

	jobs := make(chan int)

	var wg sync.WaitGroup
	for range e.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				if ctx.Err() != nil {
					continue
				}
				e.enrichOne(ctx, &packages[i])
			}
		}()
	}

	for i := range packages {
		jobs <- i
	}
	close(jobs)
	wg.Wait()
}

func (e *Enricher) enrichOne(ctx context.Context, pkg *conda.Package) {
	latest, size := e.latest(ctx, pkg)
	if latest == "" {
		e.opts.Logger("could not determine latest version for %s", pkg.Name)
		return
	}
	pkg.LatestVersion = latest
	pkg.IsOutdated = pkg.Version != "" && conda.IsNewer(latest, pkg.Version)
	if pkg.Size == 0 && size > 0 {
		pkg.Size = int64(size)
	}
}

// latest walks the registries for the freshest published version. pip
// packages go straight to PyPI; conda packages try their own channel, then
// main, then PyPI as a last resort.
func (e *Enricher) latest(ctx context.Context, pkg *conda.Package) (string, uint64) {
	if pkg.Channel == "pip" {
		if info, err := e.pypi.FetchPackage(ctx, pkg.Name, e.opts.Refresh); err == nil {
			return info.Version, 0
		}
		return "", 0
	}

	channel := pkg.Channel
	if channel == "" {
		channel = anaconda.DefaultChannel
	}
	if info, err := e.anaconda.FetchPackage(ctx, channel, pkg.Name, e.opts.Refresh); err == nil && info.LatestVersion != "" {
		return info.LatestVersion, info.Size
	}
	if channel != "main" {
		if info, err := e.anaconda.FetchPackage(ctx, "main", pkg.Name, e.opts.Refresh); err == nil && info.LatestVersion != "" {
			return info.LatestVersion, info.Size
		}
	}
	if info, err := e.pypi.FetchPackage(ctx, pkg.Name, e.opts.Refresh); err == nil {
		return info.Version, 0
	}
	return "", 0
}
