package vuln

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/condagraph/condagraph/pkg/conda"
)

// knownVulnerability is one entry in the curated table of notorious bad
// versions. The table is deliberately small: it exists so offline scans
// still catch the packages people actually ask about.
type knownVulnerability struct {
	pkg         string
	version     string
	id          string
	severity    string
	description string
}

var knownVulnerabilities = []knownVulnerability{
	{"log4j", "2.0", "CVE-2021-44228", SeverityCritical, "Log4Shell vulnerability"},
	{"numpy", "1.19.0", "CVE-2021-33430", SeverityMedium, "Buffer overflow in numpy.lib.arraypad"},
	{"tensorflow", "2.4.0", "CVE-2021-37678", SeverityHigh, "Integer overflow in TensorFlow"},
	{"torch", "1.4", "CVE-2022-45907", SeverityCritical, "Improper size validation in older PyTorch"},
	{"pillow", "8.3.0", "CVE-2021-34552", SeverityHigh, "Multiple buffer overflow vulnerabilities"},
	{"django", "2.0", "CVE-2019-19844", SeverityHigh, "XSS vulnerability in Django admin"},
	{"django", "1.11", "CVE-2020-9402", SeverityHigh, "Potential SQL injection in Django"},
	{"requests", "2.2", "CVE-2018-18074", SeverityMedium, "SSRF vulnerability in Requests"},
	{"flask", "0.12", "CVE-2018-1000656", SeverityMedium, "Session fixation in Flask"},
	{"jinja2", "2.10", "CVE-2019-10906", SeverityHigh, "Sandbox bypass in Jinja2"},
	{"sqlalchemy", "1.3.0", "CVE-2019-7164", SeverityHigh, "SQL injection in SQLAlchemy"},
	{"cryptography", "2.8", "CVE-2020-25659", SeverityMedium, "Improper certificate validation"},
	{"werkzeug", "0.14", "CVE-2019-14806", SeverityMedium, "Open redirect vulnerability"},
	{"click", "7.0", "CVE-2021-29622", SeverityMedium, "Command argument injection"},
	{"pandas", "0.24", "CVE-2020-13091", SeverityHigh, "Use-after-free in read_stata"},
	{"nltk", "3.4", "CVE-2019-14751", SeverityHigh, "Arbitrary code execution in nltk"},
	{"lxml", "4.6.2", "CVE-2021-28957", SeverityHigh, "XML external entity vulnerability"},
	{"psycopg2", "2.8.5", "CVE-2022-31116", SeverityHigh, "SQL injection vulnerability"},
	{"scipy", "1.5.0", "CVE-2020-15864", SeverityMedium, "Buffer overflow in scipy.special"},
	{"tornado", "6.0.3", "CVE-2020-28476", SeverityMedium, "Improper certificate validation"},
}

// checkKnownTable matches a package against the curated table.
func checkKnownTable(pkg conda.Package) []Vulnerability {
	name := strings.ToLower(pkg.Name)
	var out []Vulnerability
	for _, known := range knownVulnerabilities {
		if name != known.pkg || !isVulnerableVersion(pkg.Version, known.version) {
			continue
		}
		out = append(out, Vulnerability{
			ID:          known.id,
			Package:     pkg.Name,
			Version:     pkg.Version,
			Severity:    known.severity,
			Description: known.description,
		})
	}
	return out
}

// isVulnerableVersion reports whether version matches a table pattern.
// A pattern like "2.0" marks a version family (prefix match); full
// three-part patterns additionally flag anything the same age or older.
func isVulnerableVersion(version, pattern string) bool {
	if strings.HasPrefix(version, pattern) {
		return true
	}
	if _, _, _, ok := parseTriplet(version); ok {
		if _, _, _, ok = parseTriplet(pattern); ok {
			return conda.CompareVersions(version, pattern) <= 0
		}
	}
	return strings.TrimSpace(version) == strings.TrimSpace(pattern)
}

// checkVersionGap flags packages so far behind their latest release that
// unpatched vulnerabilities are likely. Requires enriched metadata
// (LatestVersion and IsOutdated set).
func checkVersionGap(pkg conda.Package) []Vulnerability {
	if pkg.LatestVersion == "" || !pkg.IsOutdated {
		return nil
	}
	if !versionGapSignificant(pkg.Version, pkg.LatestVersion) {
		return nil
	}
	return []Vulnerability{{
		ID:       "VERSION-GAP",
		Package:  pkg.Name,
		Version:  pkg.Version,
		Severity: SeverityLow,
		Description: fmt.Sprintf(
			"Potentially vulnerable due to being significantly outdated (current: %s, latest: %s)",
			pkg.Version, pkg.LatestVersion),
		FixedIn: pkg.LatestVersion,
	}}
}

// versionGapSignificant reports whether the distance between current and
// latest warrants a notice: a major version behind, or at least two minor
// versions. Versions that don't parse as numeric triplets are left alone.
func versionGapSignificant(current, latest string) bool {
	curMajor, curMinor, _, ok := parseTriplet(current)
	if !ok {
		return false
	}
	latMajor, latMinor, _, ok := parseTriplet(latest)
	if !ok {
		return false
	}
	return latMajor > curMajor || (latMajor == curMajor && latMinor >= curMinor+2)
}

// parseTriplet parses a strict numeric major.minor.patch prefix.
func parseTriplet(version string) (major, minor, patch int, ok bool) {
	parts := strings.Split(version, ".")
	if len(parts) < 3 {
		return 0, 0, 0, false
	}
	var vals [3]int
	for i := range 3 {
		n, err := strconv.Atoi(parts[i])
		if err != nil {
			return 0, 0, 0, false
		}
		vals[i] = n
	}
	return vals[0], vals[1], vals[2], true
}
