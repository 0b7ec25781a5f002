// Package osv provides an HTTP client for the OSV (Open Source
// Vulnerabilities) query API.
//
// # Overview
//
// OSV (https://osv.dev) aggregates vulnerability advisories across package
// ecosystems. This client issues per-package queries:
//
//	client := osv.NewClient(backend, 6*time.Hour)
//
//	vulns, err := client.Query(ctx, osv.EcosystemPyPI, "django", "2.0", false)
//	for _, v := range vulns {
//	    fmt.Println(v.ID, v.Summary)
//	}
//
// # Ecosystems
//
// Conda packages are queried under the PyPI ecosystem when they come from
// the pip section of an environment, and under Conda otherwise. Use
// [EcosystemPyPI] and [EcosystemConda].
//
// # Caching
//
// Query results are cached per (ecosystem, package, version). Advisory data
// changes more often than package metadata, so prefer a shorter TTL than for
// registry lookups.
package osv
