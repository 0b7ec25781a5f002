package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is used to separate cache entries resolved against different conda
// channels, since the same package name can resolve differently per channel.
//
// Example usage:
//
//	// Channel-specific keys
//	forgeKeyer := NewScopedKeyer(NewDefaultKeyer(), "channel:conda-forge:")
//
//	// Default channel keys
//	defaultKeyer := NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// HTTPKey generates a prefixed key for HTTP response caching.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// LookupKey generates a prefixed key for dependency lookup caching.
func (k *ScopedKeyer) LookupKey(pkg string, opts LookupKeyOpts) string {
	return k.prefix + k.inner.LookupKey(pkg, opts)
}

// AdvisoryKey generates a prefixed key for advisory feed caching.
func (k *ScopedKeyer) AdvisoryKey(source string) string {
	return k.prefix + k.inner.AdvisoryKey(source)
}
