package osv

import (
	"context"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/integrations"
)

// Ecosystem identifiers accepted by the OSV query API.
const (
	EcosystemPyPI  = "PyPI"
	EcosystemConda = "Conda"
)

// Vulnerability is a single advisory returned by an OSV query.
type Vulnerability struct {
	ID      string `json:"id"`      // Advisory identifier (e.g., "GHSA-...", "PYSEC-...")
	Summary string `json:"summary"` // One-line description (may be empty for some advisories)
}

// Client provides access to the OSV vulnerability query API.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an OSV client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for query result caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long query results are cached (typical: 1-6 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "osv", cacheTTL, nil),
		baseURL: "https://api.osv.dev/v1",
	}
}

// Query returns the advisories affecting the given package version.
//
// The ecosystem must be one of the OSV ecosystem identifiers; use
// [EcosystemPyPI] for pip packages and [EcosystemConda] for conda packages.
// An empty result means no known advisories affect this version.
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns [integrations.ErrNetwork] for HTTP failures. OSV answers queries
// for unknown packages with an empty vulnerability list rather than a 404.
//
// This method is safe for concurrent use.
func (c *Client) Query(ctx context.Context, ecosystem, pkg, version string, refresh bool) ([]Vulnerability, error) {
	key := ecosystem + "/" + pkg + "@" + version

	var result queryResponse
	err := c.Cached(ctx, key, refresh, &result, func() error {
		req := queryRequest{
			Package: queryPackage{Name: pkg, Ecosystem: ecosystem},
			Version: version,
		}
		return c.PostJSON(ctx, c.baseURL+"/query", req, &result)
	})
	if err != nil {
		return nil, err
	}
	return result.Vulns, nil
}

type queryRequest struct {
	Package queryPackage `json:"package"`
	Version string       `json:"version"`
}

type queryPackage struct {
	Name      string `json:"name"`
	Ecosystem string `json:"ecosystem"`
}

type queryResponse struct {
	Vulns []Vulnerability `json:"vulns"`
}
