// Package anaconda provides an HTTP client for the Anaconda.org package API.
//
// # Overview
//
// This package fetches conda package metadata from Anaconda.org
// (https://api.anaconda.org), which hosts the conda-forge, main, and
// bioconda channels among others.
//
// # Usage
//
//	client := anaconda.NewClient(backend, 24*time.Hour)  // Cache TTL
//
//	pkg, err := client.FetchPackage(ctx, "conda-forge", "numpy", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println(pkg.Name, pkg.LatestVersion)
//
// # PackageInfo
//
// [Client.FetchPackage] returns a [PackageInfo] containing:
//
//   - Name: Normalized package name
//   - LatestVersion: Newest version published on the channel
//   - Size: Download size in bytes of the latest version's largest artifact
//   - Versions: All published versions, in upload order
//   - Dependencies: Raw depends specs of the latest version
//
// # Caching
//
// Responses are cached to reduce load on Anaconda.org and speed up repeated
// requests. The cache key includes the channel, so the same package looked up
// on different channels is cached separately. Pass refresh=true to bypass
// the cache.
package anaconda
