// Package observability provides hook interfaces for instrumenting analysis
// operations without coupling the core packages to any specific metrics or
// tracing implementation.
//
// All hooks default to no-op implementations. Applications can register custom
// implementations at startup to collect metrics, emit traces, or log events:
//
//	observability.SetHTTPHooks(myMetricsCollector)
//	observability.SetCacheHooks(myCacheTracker)
//
// Hook implementations must be safe for concurrent use, as they may be called
// from multiple goroutines during dependency resolution.
package observability

import (
	"context"
	"sync"
	"time"
)

// AnalysisHooks receives notifications about analysis lifecycle events.
type AnalysisHooks interface {
	// OnAnalyzeStart is called when environment analysis begins.
	OnAnalyzeStart(ctx context.Context, envFile string)

	// OnAnalyzeComplete is called when environment analysis finishes.
	OnAnalyzeComplete(ctx context.Context, envFile string, packages int, duration time.Duration, err error)

	// OnResolveStart is called when dependency resolution begins.
	OnResolveStart(ctx context.Context, source string, packages int)

	// OnResolveComplete is called when dependency resolution finishes.
	OnResolveComplete(ctx context.Context, source string, resolved int, duration time.Duration, err error)

	// OnScanStart is called when a vulnerability scan begins.
	OnScanStart(ctx context.Context, sources []string)

	// OnScanComplete is called when a vulnerability scan finishes.
	OnScanComplete(ctx context.Context, sources []string, findings int, duration time.Duration, err error)

	// OnExportStart is called when report export begins.
	OnExportStart(ctx context.Context, format string)

	// OnExportComplete is called when report export finishes.
	OnExportComplete(ctx context.Context, format string, duration time.Duration, err error)
}

// CacheHooks receives notifications about cache operations.
type CacheHooks interface {
	// OnCacheHit is called when a cache lookup succeeds.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss is called when a cache lookup fails.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet is called when a value is stored in the cache.
	OnCacheSet(ctx context.Context, keyType string, sizeBytes int)
}

// HTTPHooks receives notifications about HTTP requests to package registries
// and advisory databases.
type HTTPHooks interface {
	// OnRequest is called before an HTTP request is made.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse is called after an HTTP response is received.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError is called when an HTTP request fails.
	OnError(ctx context.Context, method, host, path string, err error)
}

// NoopAnalysisHooks is a no-op implementation of AnalysisHooks.
type NoopAnalysisHooks struct{}

func (NoopAnalysisHooks) OnAnalyzeStart(context.Context, string)                                {}
func (NoopAnalysisHooks) OnAnalyzeComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopAnalysisHooks) OnResolveStart(context.Context, string, int)                           {}
func (NoopAnalysisHooks) OnResolveComplete(context.Context, string, int, time.Duration, error)  {}
func (NoopAnalysisHooks) OnScanStart(context.Context, []string)                                 {}
func (NoopAnalysisHooks) OnScanComplete(context.Context, []string, int, time.Duration, error)   {}
func (NoopAnalysisHooks) OnExportStart(context.Context, string)                                 {}
func (NoopAnalysisHooks) OnExportComplete(context.Context, string, time.Duration, error)        {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)       {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)      {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int)  {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                          {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration)     {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                     {}

// Global hook registry. Protected by mutex for safe concurrent access.
var (
	mu            sync.RWMutex
	analysisHooks AnalysisHooks = NoopAnalysisHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	httpHooks     HTTPHooks     = NoopHTTPHooks{}
)

// SetAnalysisHooks registers custom analysis hooks. Passing nil is ignored.
func SetAnalysisHooks(h AnalysisHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	analysisHooks = h
}

// SetCacheHooks registers custom cache hooks. Passing nil is ignored.
func SetCacheHooks(h CacheHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	cacheHooks = h
}

// SetHTTPHooks registers custom HTTP hooks. Passing nil is ignored.
func SetHTTPHooks(h HTTPHooks) {
	if h == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	httpHooks = h
}

// Analysis returns the currently registered analysis hooks.
func Analysis() AnalysisHooks {
	mu.RLock()
	defer mu.RUnlock()
	return analysisHooks
}

// Cache returns the currently registered cache hooks.
func Cache() CacheHooks {
	mu.RLock()
	defer mu.RUnlock()
	return cacheHooks
}

// HTTP returns the currently registered HTTP hooks.
func HTTP() HTTPHooks {
	mu.RLock()
	defer mu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults. Intended for tests.
func Reset() {
	mu.Lock()
	defer mu.Unlock()
	analysisHooks = NoopAnalysisHooks{}
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
