package cache

// instrumentedCache layers hit/miss accounting over any backend. Writes and
// membership checks pass straight through; only Get outcomes are counted,
// since those are what a hit-rate dashboard is built on.
type instrumentedCache struct {
	Cache
	group string
}

func newInstrumentedCache(inner Cache, group string) *instrumentedCache {
	// The entries gauge reads Len() at scrape time so TTL expiry in external
	// backends is reflected without any bookkeeping here.
	registerEntriesCollector(group, inner.Len)
	return &instrumentedCache{Cache: inner, group: group}
}

func (c *instrumentedCache) Get(key string) ([]byte, bool) {
	value, ok := c.Cache.Get(key)
	if ok {
		HitsTotal.WithLabelValues(c.group).Inc()
	} else {
		MissesTotal.WithLabelValues(c.group).Inc()
	}
	return value, ok
}

func (c *instrumentedCache) Close() error {
	unregisterEntriesCollector(c.group)
	return c.Cache.Close()
}
