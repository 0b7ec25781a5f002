// Package vuln scans environment packages for known security problems.
//
// A [Scanner] consults four sources per package:
//
//   - a small curated table of notorious bad versions, usable offline
//   - the OSV database (https://osv.dev), with the ecosystem chosen from
//     the package's channel (PyPI for pip packages, Conda otherwise)
//   - the pyup.io Safety DB feed, for pip and conda-forge packages
//   - a version-gap heuristic that flags packages far behind their latest
//     release (requires enriched metadata)
//
// Usage:
//
//	scanner := vuln.NewScanner(backend, vuln.Options{})
//	findings := scanner.Scan(ctx, env.Packages)
//	for _, f := range findings {
//		fmt.Println(f.Display())
//	}
//
// Scan is tolerant by design: sources that fail (no network, feed outage)
// are logged through Options.Logger and the scan reports whatever the
// remaining sources found. Findings are deduplicated by advisory ID and
// package, and sorted for stable output.
//
// The Safety DB feed is one large JSON document; it is fetched at most once
// per process and shared by all scanners, on top of the regular HTTP cache.
package vuln
