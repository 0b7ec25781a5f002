package deps

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations"
	"github.com/condagraph/condagraph/pkg/integrations/anaconda"
	"github.com/condagraph/condagraph/pkg/integrations/pypi"
)

var (
	_ anacondaLookup = (*fakeAnacondaAPI)(nil)
	_ pypiLookup     = (*fakePyPIAPI)(nil)
)

// fakeAnacondaAPI answers FetchPackage from a channel/name map.
type fakeAnacondaAPI struct {
	mu       sync.Mutex
	infos    map[string]*anaconda.PackageInfo // keyed "channel/name"
	channels []string                         // channels queried, in order
}

func (f *fakeAnacondaAPI) FetchPackage(_ context.Context, channel, pkg string, _ bool) (*anaconda.PackageInfo, error) {
	f.mu.Lock()
	f.channels = append(f.channels, channel)
	info := f.infos[channel+"/"+pkg]
	f.mu.Unlock()
	if info == nil {
		return nil, integrations.ErrNotFound
	}
	return info, nil
}

type fakePyPIAPI struct {
	mu    sync.Mutex
	infos map[string]*pypi.PackageInfo
	calls int
}

func (f *fakePyPIAPI) FetchPackage(_ context.Context, pkg string, _ bool) (*pypi.PackageInfo, error) {
	f.mu.Lock()
	f.calls++
	info := f.infos[pkg]
	f.mu.Unlock()
	if info == nil {
		return nil, integrations.ErrNotFound
	}
	return info, nil
}

func TestAnacondaProviderLookup(t *testing.T) {
	api := &fakeAnacondaAPI{infos: map[string]*anaconda.PackageInfo{
		"conda-forge/numpy": {
			Name:          "numpy",
			LatestVersion: "1.26.4",
			Dependencies:  []string{"python >=3.9", "libblas >=3.9.0,<4.0a0"},
		},
	}}
	p := &AnacondaProvider{client: api}

	if p.Name() != "anaconda" {
		t.Errorf("Name() = %q, want anaconda", p.Name())
	}

	deps, err := p.Lookup(context.Background(), conda.Package{Name: "numpy", Channel: "conda-forge"}, false)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(deps) != 2 {
		t.Errorf("deps = %v, want the latest artifact's depends list", deps)
	}
}

func TestAnacondaProviderSkipsPip(t *testing.T) {
	p := &AnacondaProvider{client: &fakeAnacondaAPI{}}
	_, err := p.Lookup(context.Background(), conda.Package{Name: "requests", Channel: "pip"}, false)
	if !errors.Is(err, ErrNotApplicable) {
		t.Errorf("pip package error = %v, want ErrNotApplicable", err)
	}
}

func TestAnacondaProviderPropagatesErrors(t *testing.T) {
	p := &AnacondaProvider{client: &fakeAnacondaAPI{}}
	_, err := p.Lookup(context.Background(), conda.Package{Name: "ghost", Channel: "conda-forge"}, false)
	if !errors.Is(err, integrations.ErrNotFound) {
		t.Errorf("error = %v, want ErrNotFound passed through", err)
	}
}

func TestPyPIProviderLookup(t *testing.T) {
	api := &fakePyPIAPI{infos: map[string]*pypi.PackageInfo{
		"flask": {Name: "flask", Version: "3.0.2", Dependencies: []string{"werkzeug", "jinja2", "click"}},
	}}
	p := &PyPIProvider{client: api}

	if p.Name() != "pypi" {
		t.Errorf("Name() = %q, want pypi", p.Name())
	}

	deps, err := p.Lookup(context.Background(), conda.Package{Name: "flask", Channel: "pip"}, false)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(deps) != 3 {
		t.Errorf("deps = %v, want 3 entries", deps)
	}
}

func TestPyPIProviderSkipsCondaChannels(t *testing.T) {
	api := &fakePyPIAPI{}
	p := &PyPIProvider{client: api}

	for _, channel := range []string{"conda-forge", "main", "defaults", ""} {
		if _, err := p.Lookup(context.Background(), conda.Package{Name: "numpy", Channel: channel}, false); !errors.Is(err, ErrNotApplicable) {
			t.Errorf("channel %q error = %v, want ErrNotApplicable", channel, err)
		}
	}
	if api.calls != 0 {
		t.Errorf("API called %d times for conda channels, want 0", api.calls)
	}
}
