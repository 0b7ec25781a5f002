package safetydb

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/integrations"
)

// Advisory is a single entry from the Safety DB feed.
type Advisory struct {
	ID       string   `json:"id"`       // pyup.io advisory identifier (e.g., "pyup.io-37771")
	CVE      string   `json:"cve"`      // CVE identifier (may be empty)
	Advisory string   `json:"advisory"` // Human-readable description
	Specs    []string `json:"specs"`    // Affected version ranges (e.g., ">=2.0,<2.2.9")
}

// Database maps lowercased package names to their advisories.
type Database map[string][]Advisory

// Lookup returns the advisories recorded for a package, or nil if the
// package has none. The name is matched case-insensitively.
func (db Database) Lookup(name string) []Advisory {
	return db[strings.ToLower(strings.TrimSpace(name))]
}

// Client provides access to the Safety DB advisory feed.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	feedURL string
}

// NewClient creates a Safety DB client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for feed caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long the parsed feed is cached (typical: 1-6 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "safetydb", cacheTTL, nil),
		feedURL: "https://raw.githubusercontent.com/pyupio/safety-db/master/data/insecure_full.json",
	}
}

// FetchDatabase downloads and parses the full advisory feed.
//
// If refresh is true, the cache is bypassed and the feed is refetched.
//
// Returns [integrations.ErrNetwork] for HTTP failures. The returned Database
// is never nil if err is nil, though it may be empty.
//
// This method is safe for concurrent use, but the feed is large; callers
// should fetch once and share the result.
func (c *Client) FetchDatabase(ctx context.Context, refresh bool) (Database, error) {
	var db Database
	err := c.Cached(ctx, "insecure_full", refresh, &db, func() error {
		return c.fetch(ctx, &db)
	})
	if err != nil {
		return nil, err
	}
	if db == nil {
		db = Database{}
	}
	return db, nil
}

func (c *Client) fetch(ctx context.Context, db *Database) error {
	// The feed mixes a "$meta" object in with the per-package arrays, so
	// decode into raw messages and keep only entries that parse as arrays.
	var raw map[string]json.RawMessage
	if err := c.Get(ctx, c.feedURL, &raw); err != nil {
		return err
	}

	out := make(Database, len(raw))
	for name, msg := range raw {
		if strings.HasPrefix(name, "$") {
			continue
		}
		var advisories []Advisory
		if err := json.Unmarshal(msg, &advisories); err != nil {
			continue
		}
		out[strings.ToLower(name)] = advisories
	}
	*db = out
	return nil
}
