// Package analysis assembles environment reports and derives advice.
//
// [Analyze] turns an environment's package list, dependency map, and
// conflict records into a [Report]: aggregate totals (size, pinned and
// outdated counts) plus a set of plain-text recommendations. The report
// carries a generated UUID and creation timestamp so it can be persisted
// and compared across runs by the history store.
//
// [Recommendations] and [RedundantPackages] are exposed separately for
// callers that want the advice without building a full report. All
// functions in this package are pure over their inputs and perform no
// network or filesystem access.
package analysis
