package anaconda

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/condagraph/condagraph/pkg/cache"
	"github.com/condagraph/condagraph/pkg/integrations"
)

// DefaultChannel is consulted when a package declares no channel of its own.
const DefaultChannel = "conda-forge"

// PackageInfo holds metadata for a conda package from Anaconda.org.
//
// Zero values: all string fields are empty, Size is 0, Versions is nil.
// A zero Size means the channel reported no artifact size for the latest
// version. This struct is safe for concurrent reads after construction.
type PackageInfo struct {
	Name          string   // Normalized package name (never empty in valid info)
	LatestVersion string   // Newest published version (may be empty for unversioned channels)
	Size          uint64   // Largest artifact size in bytes for the latest version, 0 if unknown
	Versions      []string // All published versions in upload order, deduplicated
	Dependencies  []string // Raw depends specs of the latest version (e.g. "numpy >=1.16.6,<2.0a0")
}

// Client provides access to the Anaconda.org package API.
// It handles HTTP requests with caching and automatic retries.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
}

// NewClient creates an Anaconda.org client with the given cache backend.
//
// Parameters:
//   - backend: Cache backend for HTTP response caching (use cache.NewNullCache() for no caching)
//   - cacheTTL: How long responses are cached (typical: 1-24 hours)
//
// The returned Client is safe for concurrent use.
func NewClient(backend cache.Cache, cacheTTL time.Duration) *Client {
	return &Client{
		Client:  integrations.NewClient(backend, "anaconda", cacheTTL, nil),
		baseURL: "https://api.anaconda.org/package",
	}
}

// FetchPackage retrieves metadata for a conda package from Anaconda.org.
//
// The channel selects which conda channel to query; an empty channel falls
// back to [DefaultChannel]. The pkg parameter is normalized automatically
// (case-insensitive, underscores become hyphens).
//
// If refresh is true, the cache is bypassed and a fresh API call is made.
//
// Returns:
//   - PackageInfo populated with metadata on success
//   - [integrations.ErrNotFound] if the package doesn't exist on the channel
//   - [integrations.ErrNetwork] for HTTP failures (timeout, 5xx, etc.)
//
// The returned PackageInfo pointer is never nil if err is nil.
// This method is safe for concurrent use.
func (c *Client) FetchPackage(ctx context.Context, channel, pkg string, refresh bool) (*PackageInfo, error) {
	if channel == "" {
		channel = DefaultChannel
	}
	pkg = integrations.NormalizePkgName(pkg)
	key := channel + "/" + pkg

	var info PackageInfo
	err := c.Cached(ctx, key, refresh, &info, func() error {
		return c.fetch(ctx, channel, pkg, &info)
	})
	if err != nil {
		return nil, err
	}
	return &info, nil
}

func (c *Client) fetch(ctx context.Context, channel, pkg string, info *PackageInfo) error {
	var data apiResponse
	if err := c.Get(ctx, fmt.Sprintf("%s/%s/%s", c.baseURL, channel, pkg), &data); err != nil {
		if errors.Is(err, integrations.ErrNotFound) {
			return fmt.Errorf("%w: anaconda package %s/%s", err, channel, pkg)
		}
		return err
	}

	seen := make(map[string]bool)
	versions := make([]string, 0, len(data.Files))
	var size uint64
	var deps []string
	for _, f := range data.Files {
		if f.Version != "" && !seen[f.Version] {
			seen[f.Version] = true
			versions = append(versions, f.Version)
		}
		// The latest version usually ships several artifacts (per platform);
		// report the largest one and take dependencies from the first.
		if f.Version == data.LatestVersion {
			if f.Size > size {
				size = f.Size
			}
			if deps == nil {
				deps = f.Dependencies
			}
		}
	}

	*info = PackageInfo{
		Name:          pkg,
		LatestVersion: data.LatestVersion,
		Size:          size,
		Versions:      versions,
		Dependencies:  deps,
	}
	return nil
}

type apiResponse struct {
	LatestVersion string    `json:"latest_version"`
	Files         []apiFile `json:"files"`
}

type apiFile struct {
	Version      string   `json:"version"`
	Size         uint64   `json:"size"`
	Dependencies []string `json:"dependencies"`
}
