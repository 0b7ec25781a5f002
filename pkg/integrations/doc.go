// Package integrations provides HTTP clients for package registry and
// advisory database APIs.
//
// # Overview
//
// This package contains low-level API clients for fetching package metadata
// and security advisories. Each upstream service has its own subpackage:
//
//   - [anaconda]: Anaconda.org package API (conda channels)
//   - [pypi]: Python Package Index JSON API
//   - [osv]: Open Source Vulnerabilities query API
//   - [safetydb]: pyup.io Safety DB advisory feed
//
// # Client Pattern
//
// All clients follow a consistent pattern:
//
//	client := pypi.NewClient(backend, 24*time.Hour)        // Cache TTL
//	pkg, err := client.FetchPackage(ctx, "flask", false)   // false = use cache
//
// Clients handle:
//   - HTTP requests with retry and timeouts
//   - Response caching (pluggable backend, configurable TTL)
//   - API-specific parsing and normalization
//
// # Shared Infrastructure
//
// The [Client] type provides shared HTTP functionality used by all registry
// clients, including HTTP response caching via [cache.Cache] and hook firing
// via [observability].
//
// # Adding a New Registry
//
// To add support for a new upstream service:
//
//  1. Create a subpackage: pkg/integrations/<registry>/
//  2. Define response structs matching the API schema
//  3. Implement a Client with a Fetch method
//  4. Use [NewClient] for HTTP with caching
//  5. Wire into [deps] or [vuln] as a new source
//
// [anaconda]: github.com/condagraph/condagraph/pkg/integrations/anaconda
// [pypi]: github.com/condagraph/condagraph/pkg/integrations/pypi
// [osv]: github.com/condagraph/condagraph/pkg/integrations/osv
// [safetydb]: github.com/condagraph/condagraph/pkg/integrations/safetydb
// [cache.Cache]: github.com/condagraph/condagraph/pkg/cache.Cache
// [observability]: github.com/condagraph/condagraph/pkg/observability
// [deps]: github.com/condagraph/condagraph/pkg/deps
// [vuln]: github.com/condagraph/condagraph/pkg/vuln
package integrations
