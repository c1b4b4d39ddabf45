// Package cache provides pluggable key/value caching for raw query
// responses, so repeated searches of an unchanged video file can skip the
// network. Backends register themselves under a name; callers pick one by
// config.
package cache

// EvictCallback runs when an entry falls out of the cache. Backends that
// evict server-side (Redis) never invoke it.
type EvictCallback func(key string, value []byte)

// Logger receives errors from cache operations that have no error return.
// The cache is best-effort and never fails a search; a nil Logger drops them.
type Logger interface {
	Error(msg string, err error)
}

// Cache is the store shared by providers for raw response bodies. Get and Set
// never report failure; a backend problem degrades to a miss.
type Cache interface {
	// Get returns the value for key and whether it was present.
	Get(key string) ([]byte, bool)

	// Set stores value under key, replacing any existing entry.
	Set(key string, value []byte)

	// Contains reports presence without touching recency ordering.
	Contains(key string) bool

	// Len returns the current entry count. External backends report the
	// count within their key namespace.
	Len() int

	// Close releases backend resources. A no-op for in-memory caches.
	Close() error
}
