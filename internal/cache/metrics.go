package cache

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Counters carry a "cache" label set to the BackendConfig Group, so several
// cache instances stay distinguishable on one metrics endpoint.
var (
	HitsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_hits_total",
			Help: "Total number of cache hits.",
		},
		[]string{"cache"},
	)

	MissesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_misses_total",
			Help: "Total number of cache misses.",
		},
		[]string{"cache"},
	)

	EvictionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_evictions_total",
			Help: "Total number of entries evicted from the cache.",
		},
		[]string{"cache"},
	)
)

func init() {
	prometheus.MustRegister(HitsTotal, MissesTotal, EvictionsTotal)
}

var (
	entriesMu         sync.Mutex
	entriesCollectors = make(map[string]*entriesCollector)
	// entriesReg is a variable so tests can point collectors at an isolated
	// registry instead of the process-wide default.
	entriesReg prometheus.Registerer = prometheus.DefaultRegisterer
)

// entriesCollector exports cache_entries for one cache group as a gauge whose
// value comes from calling the backend's Len at scrape time.
type entriesCollector struct {
	desc *prometheus.Desc
	size func() int
}

func (c *entriesCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

func (c *entriesCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, float64(c.size()))
}

// registerEntriesCollector publishes a cache_entries gauge for group. A later
// registration for the same group replaces the earlier one, so recreating a
// cache under a reused group name is safe.
func registerEntriesCollector(group string, size func() int) {
	c := &entriesCollector{
		desc: prometheus.NewDesc(
			"cache_entries",
			"Current number of entries in the cache.",
			nil,
			prometheus.Labels{"cache": group},
		),
		size: size,
	}

	entriesMu.Lock()
	defer entriesMu.Unlock()

	if old, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(old)
	}
	entriesCollectors[group] = c
	_ = entriesReg.Register(c)
}

func unregisterEntriesCollector(group string) {
	entriesMu.Lock()
	defer entriesMu.Unlock()

	if c, ok := entriesCollectors[group]; ok {
		entriesReg.Unregister(c)
		delete(entriesCollectors, group)
	}
}
