// Package safetydb provides a client for the pyup.io Safety DB advisory feed.
//
// # Overview
//
// Safety DB (https://github.com/pyupio/safety-db) publishes a JSON feed of
// insecure Python package versions. Unlike the OSV API it is fetched whole,
// then consulted locally:
//
//	client := safetydb.NewClient(backend, 6*time.Hour)
//
//	db, err := client.FetchDatabase(ctx, false)
//	for _, adv := range db.Lookup("django") {
//	    fmt.Println(adv.CVE, adv.Advisory)
//	}
//
// # Feed Shape
//
// The feed maps package names to advisory arrays and mixes in a "$meta"
// bookkeeping object, which is skipped during decoding. Each advisory carries
// the affected version ranges in specs (e.g. ">=2.0,<2.2.9").
//
// # Caching
//
// The parsed feed is cached whole under a single key. It is a few megabytes,
// so callers should hold on to the returned [Database] rather than refetching
// per package.
package safetydb
