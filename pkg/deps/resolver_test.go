package deps

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/observability"
)

var _ Provider = (*fakeProvider)(nil)

type fakeProvider struct {
	name string
	deps map[string][]string
	err  error

	mu    sync.Mutex
	calls int
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Lookup(_ context.Context, pkg conda.Package, _ bool) ([]string, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	deps, ok := f.deps[pkg.Name]
	if !ok {
		return nil, ErrNotApplicable
	}
	return deps, nil
}

func (f *fakeProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func TestResolverResolve(t *testing.T) {
	meta := &fakeProvider{name: "conda-meta", deps: map[string][]string{
		"numpy": {"python >=3.9", "libblas >=3.9.0,<4.0a0"},
	}}
	registry := &fakeProvider{name: "anaconda", deps: map[string][]string{
		"pandas": {"numpy >=1.22.4", "python-dateutil >=2.8.2", "pytz 2020a.*"},
	}}

	r := NewResolver([]Provider{meta, registry}, Options{Workers: 2})
	depMap := r.Resolve(context.Background(), []conda.Package{
		{Name: "numpy", Version: "1.26.4"},
		{Name: "pandas", Version: "2.2.1"},
	})

	numpy := depMap["numpy"]
	if len(numpy) != 2 || numpy[0] != "python>=3.9" || numpy[1] != "libblas>=3.9.0,<4.0a0" {
		t.Errorf("numpy deps = %v, want attached-form specs", numpy)
	}

	pandas := depMap["pandas"]
	if len(pandas) != 3 {
		t.Fatalf("pandas has %d deps, want 3", len(pandas))
	}
	if pandas[2] != "pytz" {
		t.Errorf("pandas[2] = %q, want build pattern dropped to bare name", pandas[2])
	}
}

func TestResolverProviderChain(t *testing.T) {
	first := &fakeProvider{name: "conda-meta", deps: map[string][]string{}}
	second := &fakeProvider{name: "anaconda", deps: map[string][]string{
		"flask": {"werkzeug >=3.0.0", "jinja2 >=3.1.2"},
	}}

	r := NewResolver([]Provider{first, second}, Options{Workers: 1})
	depMap := r.Resolve(context.Background(), []conda.Package{{Name: "flask"}})

	if len(depMap["flask"]) != 2 {
		t.Errorf("flask deps = %v, want answer from second provider", depMap["flask"])
	}
	if first.callCount() != 1 || second.callCount() != 1 {
		t.Errorf("call counts = %d, %d, want both consulted once", first.callCount(), second.callCount())
	}
}

func TestResolverLogsFailures(t *testing.T) {
	var mu sync.Mutex
	var logs []string
	logger := func(format string, args ...any) {
		mu.Lock()
		logs = append(logs, fmt.Sprintf(format, args...))
		mu.Unlock()
	}

	broken := &fakeProvider{name: "anaconda", err: errors.New("connection refused")}
	fallback := &fakeProvider{name: "static", deps: map[string][]string{
		"pytorch": {"python", "numpy"},
	}}

	r := NewResolver([]Provider{broken, fallback}, Options{Workers: 1, Logger: logger})
	depMap := r.Resolve(context.Background(), []conda.Package{{Name: "pytorch"}})

	if len(depMap["pytorch"]) != 2 {
		t.Errorf("pytorch deps = %v, want fallback answer despite failure", depMap["pytorch"])
	}

	mu.Lock()
	defer mu.Unlock()
	if len(logs) != 1 || !strings.Contains(logs[0], "via anaconda") {
		t.Errorf("logs = %v, want one failure mentioning the provider", logs)
	}
}

func TestResolverUnresolvedGetsEmptyEntry(t *testing.T) {
	empty := &fakeProvider{name: "conda-meta", deps: map[string][]string{}}

	r := NewResolver([]Provider{empty}, Options{Workers: 1, Logger: func(string, ...any) {}})
	depMap := r.Resolve(context.Background(), []conda.Package{{Name: "mystery"}})

	deps, ok := depMap["mystery"]
	if !ok {
		t.Fatal("unresolved package missing from map")
	}
	if len(deps) != 0 {
		t.Errorf("unresolved deps = %v, want empty", deps)
	}
}

func TestResolverFillsKnownDeps(t *testing.T) {
	p := &fakeProvider{name: "conda-meta", deps: map[string][]string{
		"analytics": {"pandas >=2.0", "customlib >=1.0"},
	}}

	r := NewResolver([]Provider{p}, Options{Workers: 1, Logger: func(string, ...any) {}})
	depMap := r.Resolve(context.Background(), []conda.Package{{Name: "analytics"}})

	pandas := depMap["pandas"]
	if len(pandas) != 4 || pandas[0] != "numpy" {
		t.Errorf("pandas = %v, want static-table backfill", pandas)
	}
	if _, ok := depMap["customlib"]; ok {
		t.Error("customlib has no static entry and should not be backfilled")
	}
}

func TestResolverManyPackages(t *testing.T) {
	deps := make(map[string][]string)
	var packages []conda.Package
	for i := range 50 {
		name := fmt.Sprintf("pkg%02d", i)
		deps[name] = []string{"python >=3.9"}
		packages = append(packages, conda.Package{Name: name})
	}
	p := &fakeProvider{name: "conda-meta", deps: deps}

	r := NewResolver([]Provider{p}, Options{Workers: 8})
	depMap := r.Resolve(context.Background(), packages)

	for _, pkg := range packages {
		if len(depMap[pkg.Name]) != 1 {
			t.Errorf("%s deps = %v, want one entry", pkg.Name, depMap[pkg.Name])
		}
	}
	if p.callCount() != 50 {
		t.Errorf("provider called %d times, want 50", p.callCount())
	}
}

func TestResolverSource(t *testing.T) {
	r := NewResolver([]Provider{
		&fakeProvider{name: "conda-meta"},
		&fakeProvider{name: "anaconda"},
	}, Options{})
	if got := r.Source(); got != "conda-meta,anaconda" {
		t.Errorf("Source() = %q, want %q", got, "conda-meta,anaconda")
	}
}

type recordingAnalysisHooks struct {
	observability.NoopAnalysisHooks

	mu            sync.Mutex
	resolveSource string
	resolveCount  int
	resolvedCount int
	completed     bool
}

func (h *recordingAnalysisHooks) OnResolveStart(_ context.Context, source string, packages int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resolveSource = source
	h.resolveCount = packages
}

func (h *recordingAnalysisHooks) OnResolveComplete(_ context.Context, _ string, resolved int, _ time.Duration, _ error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.resolvedCount = resolved
	h.completed = true
}

func TestResolverFiresHooks(t *testing.T) {
	hooks := &recordingAnalysisHooks{}
	observability.SetAnalysisHooks(hooks)
	defer observability.Reset()

	p := &fakeProvider{name: "conda-meta", deps: map[string][]string{
		"numpy": {"python >=3.9"},
	}}
	r := NewResolver([]Provider{p}, Options{Workers: 1, Logger: func(string, ...any) {}})
	r.Resolve(context.Background(), []conda.Package{{Name: "numpy"}, {Name: "mystery"}})

	hooks.mu.Lock()
	defer hooks.mu.Unlock()
	if hooks.resolveSource != "conda-meta" || hooks.resolveCount != 2 {
		t.Errorf("OnResolveStart got (%q, %d), want (conda-meta, 2)", hooks.resolveSource, hooks.resolveCount)
	}
	if !hooks.completed || hooks.resolvedCount != 1 {
		t.Errorf("OnResolveComplete got resolved=%d completed=%v, want 1 resolved", hooks.resolvedCount, hooks.completed)
	}
}

func TestNormalizeSpec(t *testing.T) {
	tests := []struct {
		spec string
		want string
	}{
		{"numpy >=1.16.6,<2.0a0", "numpy>=1.16.6,<2.0a0"},
		{"python >=3.9", "python>=3.9"},
		{"typing-extensions ~=4.0", "typing-extensions~=4.0"},
		{"python_abi 3.9.* *_cp39", "python_abi"},
		{"pytz 2020a.*", "pytz"},
		{"zlib 1.2.11 h1234_0", "zlib"},
		{"requests", "requests"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			if got := normalizeSpec(tt.spec); got != tt.want {
				t.Errorf("normalizeSpec(%q) = %q, want %q", tt.spec, got, tt.want)
			}
		})
	}
}

func TestNormalizeSpecsDeduplicates(t *testing.T) {
	got := normalizeSpecs([]string{"numpy >=1.16", "numpy>=1.16", "python 3.12.*", "python"})
	want := []string{"numpy>=1.16", "python"}
	if len(got) != len(want) {
		t.Fatalf("normalizeSpecs = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("normalizeSpecs[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestFillKnownDepsSkipsPopulated(t *testing.T) {
	depMap := map[string][]string{
		"app":    {"pandas>=2.0", "numpy>=1.22"},
		"pandas": {"numpy"},
	}
	fillKnownDeps(depMap)

	if len(depMap["pandas"]) != 1 {
		t.Errorf("pandas = %v, existing entries must not be overwritten", depMap["pandas"])
	}
	if len(depMap["numpy"]) != 0 {
		t.Errorf("numpy = %v, no static entry exists so none should appear", depMap["numpy"])
	}
}
