package vuln

import (
	"context"
	"strings"
	"sync"

	"github.com/condagraph/condagraph/pkg/conda"
	"github.com/condagraph/condagraph/pkg/integrations/safetydb"
)

// safetyFetcher is the slice of the Safety DB client the scanner needs.
type safetyFetcher interface {
	FetchDatabase(ctx context.Context, refresh bool) (safetydb.Database, error)
}

var _ safetyFetcher = (*safetydb.Client)(nil)

// safetyCell holds one process-wide Safety DB fetch. The feed is a single
// multi-megabyte JSON document, so every scanner in the process shares the
// first download, success or failure.
type safetyCell struct {
	once sync.Once
	db   safetydb.Database
	err  error
}

var processSafetyDB safetyCell

func (c *safetyCell) load(ctx context.Context, client safetyFetcher, refresh bool) (safetydb.Database, error) {
	c.once.Do(func() {
		c.db, c.err = client.FetchDatabase(ctx, refresh)
	})
	return c.db, c.err
}

// checkSafety matches a package against its Safety DB advisories.
func (s *Scanner) checkSafety(ctx context.Context, pkg conda.Package) ([]Vulnerability, error) {
	db, err := s.cell.load(ctx, s.safety, s.opts.Refresh)
	if err != nil {
		return nil, err
	}

	var out []Vulnerability
	for _, adv := range db.Lookup(pkg.Name) {
		if adv.Advisory == "" || !advisoryAffects(adv, pkg.Version) {
			continue
		}
		id := adv.CVE
		if id == "" {
			id = adv.ID
		}
		out = append(out, Vulnerability{
			ID:          id,
			Package:     pkg.Name,
			Version:     pkg.Version,
			Severity:    SeverityUnknown,
			Description: adv.Advisory,
		})
	}
	return out, nil
}

// advisoryAffects reports whether any of the advisory's specs covers version.
func advisoryAffects(adv safetydb.Advisory, version string) bool {
	for _, spec := range adv.Specs {
		if isVersionAffected(version, spec) {
			return true
		}
	}
	return false
}

// isVersionAffected evaluates one Safety DB range spec against a version.
// A spec is a comma-joined conjunction of conditions (">=1.4,<1.4.22"); a
// condition without an operator is an exact version listing. Conditions that
// can't be evaluated fail the whole spec.
func isVersionAffected(version, spec string) bool {
	matched := false
	for _, part := range strings.Split(spec, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		op, rest := splitOperator(part)
		if op == "" {
			if part == strings.TrimSpace(version) {
				matched = true
				continue
			}
			return false
		}
		rest = strings.TrimSpace(rest)
		if !comparableVersion(rest) || !comparableVersion(version) {
			return false
		}
		cmp := conda.CompareVersions(version, rest)
		var ok bool
		switch op {
		case "<=":
			ok = cmp <= 0
		case "<":
			ok = cmp < 0
		case ">=":
			ok = cmp >= 0
		case ">":
			ok = cmp > 0
		case "==":
			ok = cmp == 0
		case "!=":
			ok = cmp != 0
		}
		if !ok {
			return false
		}
		matched = true
	}
	return matched
}

func splitOperator(s string) (op, rest string) {
	for _, candidate := range []string{"<=", ">=", "==", "!=", "<", ">"} {
		if strings.HasPrefix(s, candidate) {
			return candidate, s[len(candidate):]
		}
	}
	return "", s
}

// comparableVersion reports whether s looks enough like a version to compare
// numerically.
func comparableVersion(s string) bool {
	return s != "" && s[0] >= '0' && s[0] <= '9'
}
