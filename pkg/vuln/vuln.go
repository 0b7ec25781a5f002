package vuln

import (
	"fmt"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
)

// Severity buckets for findings. The curated table assigns these by hand;
// sources that don't report severity use SeverityUnknown.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
	SeverityUnknown  = "unknown"
)

const (
	DefaultWorkers  = 8                  // Default concurrent package scans
	DefaultCacheTTL = cache.TTLAdvisory  // Default advisory cache duration
)

// Vulnerability is a single security finding against an installed package.
type Vulnerability struct {
	ID          string `json:"id" bson:"id"`                             // Advisory identifier (CVE, GHSA, PYSEC, pyup.io)
	Package     string `json:"package" bson:"package"`                   // Affected package name
	Version     string `json:"version" bson:"version"`                   // Installed version the finding applies to
	Severity    string `json:"severity" bson:"severity"`                 // One of the Severity constants
	Description string `json:"description" bson:"description"`           // Human-readable summary
	FixedIn     string `json:"fixed_in,omitempty" bson:"fixed_in,omitempty"` // Version that resolves the finding, when known
}

// Display returns a one-line human-readable rendering of the finding.
func (v Vulnerability) Display() string {
	if v.ID == "" {
		return fmt.Sprintf("%s %s: %s", v.Package, v.Version, v.Description)
	}
	return fmt.Sprintf("%s %s: %s (%s)", v.Package, v.Version, v.Description, v.ID)
}

// Options configures vulnerability scanning behavior.
type Options struct {
	Workers  int                  // Concurrent package scans (default: 8)
	CacheTTL time.Duration        // Advisory cache duration (default: 6h)
	Refresh  bool                 // Bypass cache for fresh data
	Offline  bool                 // Skip checks that need the network
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
