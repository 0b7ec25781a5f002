package deps

import (
	"context"
	"slices"
	"strings"

	"github.com/condagraph/condagraph/pkg/conda"
)

// knownDeps lists direct dependencies for a handful of very common packages.
// Consulted as a last resort when no other source answers, and by the
// resolver's fill pass for dependencies discovered during resolution.
var knownDeps = map[string][]string{
	"pandas":       {"numpy", "python", "python-dateutil", "pytz"},
	"matplotlib":   {"numpy", "python", "pillow", "cycler"},
	"scikit-learn": {"numpy", "scipy", "python", "joblib"},
	"tensorflow":   {"numpy", "python", "protobuf", "absl-py"},
	"pytorch":      {"python", "numpy"},
	"jupyterlab":   {"python", "jupyter-core", "ipython"},
}

// KnownDeps returns the static table entry for a package name, or nil when
// the package is not in the table.
func KnownDeps(name string) []string {
	deps, ok := knownDeps[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil
	}
	return slices.Clone(deps)
}

// StaticProvider answers lookups from the fixed table of well-known packages.
// It needs no network and never goes stale, but covers very little; it exists
// so demo environments resolve to something sensible offline.
type StaticProvider struct{}

// Name returns the provider identifier.
func (StaticProvider) Name() string { return "static" }

// Lookup returns the table entry for the package, or ErrNotApplicable when
// the package is not covered.
func (StaticProvider) Lookup(_ context.Context, pkg conda.Package, _ bool) ([]string, error) {
	deps := KnownDeps(pkg.Name)
	if deps == nil {
		return nil, ErrNotApplicable
	}
	return deps, nil
}
