package vuln

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations/osv"
	"github.com/condagraph/condagraph/pkg/integrations/safetydb"
	"github.com/condagraph/condagraph/pkg/observability"
)

// osvQuerier is the slice of the OSV client the scanner needs.
type osvQuerier interface {
	Query(ctx context.Context, ecosystem, pkg, version string, refresh bool) ([]osv.Vulnerability, error)
}

var _ osvQuerier = (*osv.Client)(nil)

// Scanner checks packages against several vulnerability sources: the curated
// table, the OSV database, the Safety DB feed, and the version-gap heuristic.
type Scanner struct {
	osv    osvQuerier
	safety safetyFetcher
	cell   *safetyCell
	opts   Options
}

// NewScanner creates a Scanner backed by the given cache. All scanners in a
// process share one Safety DB download.
func NewScanner(backend cache.Cache, opts Options) *Scanner {
	opts = opts.WithDefaults()
	return &Scanner{
		osv:    osv.NewClient(backend, opts.CacheTTL),
		safety: safetydb.NewClient(backend, opts.CacheTTL),
		cell:   &processSafetyDB,
		opts:   opts,
	}
}

// Sources returns the names of the sources a scan will consult.
func (s *Scanner) Sources() []string {
	if s.opts.Offline {
		return []string{"known-versions", "version-gap"}
	}
	return []string{"known-versions", "osv", "safety-db", "version-gap"}
}

// Scan checks every package and returns the deduplicated findings sorted by
// package name, then advisory ID. Network failures are logged and skipped,
// so a scan always returns what it could determine.
func (s *Scanner) Scan(ctx context.Context, packages []conda.Package) []Vulnerability {
	hooks := observability.Analysis()
	sources := s.Sources()
	hooks.OnScanStart(ctx, sources)
	start := time.Now()

	jobs := make(chan conda.Package)
	results := make(chan []Vulnerability)

	var wg sync.WaitGroup
	for range s.opts.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pkg := range jobs {
				if ctx.Err() != nil {
					results <- nil
					continue
				}
				results <- s.scanPackage(ctx, pkg)
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

	var findings []Vulnerability
	for res := range results {
		findings = append(findings, res...)
	}

	findings = dedupe(findings)
	slices.SortFunc(findings, func(a, b Vulnerability) int {
		if c := strings.Compare(a.Package, b.Package); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	hooks.OnScanComplete(ctx, sources, len(findings), time.Since(start), ctx.Err())
	return findings
}

// scanPackage runs every applicable source for one package. Packages without
// a version can't be matched against anything.
func (s *Scanner) scanPackage(ctx context.Context, pkg conda.Package) []Vulnerability {
	if pkg.Version == "" {
		return nil
	}

	findings := checkKnownTable(pkg)

	if !s.opts.Offline {
		osvFindings, err := s.checkOSV(ctx, pkg)
		if err != nil {
			s.opts.Logger("OSV query failed for %s: %v", pkg.Name, err)
		}
		findings = append(findings, osvFindings...)

		// The Safety DB covers PyPI-published packages; conda-forge largely
		// mirrors them under the same names.
		if pkg.Channel == "pip" || pkg.Channel == "conda-forge" {
			safetyFindings, err := s.checkSafety(ctx, pkg)
			if err != nil {
				s.opts.Logger("Safety DB check failed for %s: %v", pkg.Name, err)
			}
			findings = append(findings, safetyFindings...)
		}
	}

	return append(findings, checkVersionGap(pkg)...)
}

// checkOSV queries the OSV database with the ecosystem matching the
// package's channel. Advisories without both an ID and a summary are
// skipped.
func (s *Scanner) checkOSV(ctx context.Context, pkg conda.Package) ([]Vulnerability, error) {
	ecosystem := osv.EcosystemConda
	if pkg.Channel == "pip" {
		ecosystem = osv.EcosystemPyPI
	}
	vulns, err := s.osv.Query(ctx, ecosystem, pkg.Name, pkg.Version, s.opts.Refresh)
	if err != nil {
		return nil, err
	}

	var out []Vulnerability
	for _, v := range vulns {
		if v.ID == "" || v.Summary == "" {
			continue
		}
		out = append(out, Vulnerability{
			ID:          v.ID,
			Package:     pkg.Name,
			Version:     pkg.Version,
			Severity:    SeverityUnknown,
			Description: v.Summary,
		})
	}
	return out, nil
}

// dedupe drops findings reporting the same advisory against the same
// package, keeping the first occurrence.
func dedupe(findings []Vulnerability) []Vulnerability {
	seen := make(map[string]bool, len(findings))
	out := findings[:0]
	for _, f := range findings {
		key := f.ID + "|" + f.Package
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
