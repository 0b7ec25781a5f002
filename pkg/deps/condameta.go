package deps

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/condagraph/condagraph/pkg/conda"
)

// CondaMetaProvider reads dependency data from the conda-meta directory of
// an installed environment prefix. Every installed package has a JSON file
// there (name-version-build.json) whose depends list is the authoritative
// dependency record.
type CondaMetaProvider struct {
	dir string
}

// NewCondaMetaProvider creates a provider reading from the given conda-meta
// directory (e.g. "/opt/conda/envs/myenv/conda-meta").
func NewCondaMetaProvider(dir string) *CondaMetaProvider {
	return &CondaMetaProvider{dir: dir}
}

// Name returns the provider identifier.
func (p *CondaMetaProvider) Name() string { return "conda-meta" }

// Lookup finds the package's metadata file and returns its depends list.
// A missing file is normal (pip packages, environments analyzed from a spec
// file rather than an installed prefix) and reported as ErrNotApplicable so
// the chain moves on without noise.
func (p *CondaMetaProvider) Lookup(_ context.Context, pkg conda.Package, _ bool) ([]string, error) {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		return nil, fmt.Errorf("reading conda-meta dir: %w", err)
	}

	want := strings.ToLower(pkg.Name)
	for _, entry := range entries {
		if entry.IsDir() || metaFileName(entry.Name()) != want {
			continue
		}
		data, err := os.ReadFile(filepath.Join(p.dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		var meta struct {
			Depends []string `json:"depends"`
		}
		if err := json.Unmarshal(data, &meta); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", entry.Name(), err)
		}
		return meta.Depends, nil
	}
	return nil, fmt.Errorf("no conda-meta entry for %s: %w", pkg.Name, ErrNotApplicable)
}

// metaFileName extracts the package name from a conda-meta file name of the
// form name-version-build.json. The name itself may contain hyphens
// (numpy-base-1.26.4-py312_0.json), so the last two segments are the
// version and build. Returns "" for files that don't match the form.
func metaFileName(filename string) string {
	base, ok := strings.CutSuffix(filename, ".json")
	if !ok {
		return ""
	}
	parts := strings.Split(base, "-")
	if len(parts) < 3 {
		return ""
	}
	return strings.ToLower(strings.Join(parts[:len(parts)-2], "-"))
}
