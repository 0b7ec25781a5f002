package deps

import (
	"context"
	"errors"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations/anaconda"
	"github.com/condagraph/condagraph/pkg/integrations/pypi"
)

const (
	DefaultWorkers  = 8              // Default concurrent lookups
	DefaultCacheTTL = cache.TTLHTTP  // Default registry cache duration
)

// ErrNotApplicable is returned by a Provider that does not handle a
// package's channel. The resolver moves on to the next provider without
// logging it as a failure.
var ErrNotApplicable = errors.New("provider not applicable")

// Options configures dependency resolution behavior.
type Options struct {
	Workers  int                  // Concurrent lookups (default: 8)
	CacheTTL time.Duration        // Registry cache duration (default: 24h)
	Refresh  bool                 // Bypass cache for fresh data
	Offline  bool                 // Skip providers that need the network
	Logger   func(string, ...any) // Progress/error callback (optional)
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Workers <= 0 {
		opts.Workers = DefaultWorkers
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = DefaultCacheTTL
	}
	if opts.Logger == nil {
		opts.Logger = func(string, ...any) {}
	}
	return opts
}

// Provider resolves the direct dependency specs of a single package.
type Provider interface {
	// Lookup returns raw dependency specs for the package. Specs may carry
	// version constraints ("numpy >=1.16.6,<2.0a0") or be plain names.
	// Returns ErrNotApplicable when the provider does not handle this
	// package's channel.
	Lookup(ctx context.Context, pkg conda.Package, refresh bool) ([]string, error)

	// Name returns the provider identifier (e.g., "conda-meta", "anaconda").
	Name() string
}

// DefaultProviders assembles the standard provider chain: conda-meta files
// (when metaDir is non-empty), the Anaconda.org and PyPI APIs (unless
// opts.Offline), and the static fallback table.
func DefaultProviders(metaDir string, backend cache.Cache, opts Options) []Provider {
	opts = opts.WithDefaults()

	var providers []Provider
	if metaDir != "" {
		providers = append(providers, NewCondaMetaProvider(metaDir))
	}
	if !opts.Offline {
		providers = append(providers,
			NewAnacondaProvider(anaconda.NewClient(backend, opts.CacheTTL)),
			NewPyPIProvider(pypi.NewClient(backend, opts.CacheTTL)),
		)
	}
	return append(providers, StaticProvider{})
}
