package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Subtitle search metrics
var (
	SearchesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_searches_total",
			Help: "Total number of subtitle searches.",
		},
		[]string{"provider", "status"},
	)

	SearchQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "subtitle_search_queries_total",
			Help: "Total number of per-language queries issued to remote subtitle services.",
		},
		[]string{"provider", "language"},
	)

	FingerprintsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "video_fingerprints_total",
			Help: "Total number of video fingerprint computations.",
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(
		SearchesTotal,
		SearchQueriesTotal,
		FingerprintsTotal,
	)
}
