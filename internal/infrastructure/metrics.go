package infrastructure

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pipeline metrics exposed on /metrics. Registered once on the default
// registry at package load.
var (
	// FetchPagesTotal counts live API pages fetched, by outcome.
	FetchPagesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "seoul_dashboard",
		Name:      "fetch_pages_total",
		Help:      "Live API pages fetched, labelled by outcome.",
	}, []string{"outcome"})

	// CacheHitsTotal and CacheMissesTotal track the dataset memo store.
	CacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seoul_dashboard",
		Name:      "cache_hits_total",
		Help:      "Dataset cache hits.",
	})
	CacheMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "seoul_dashboard",
		Name:      "cache_misses_total",
		Help:      "Dataset cache misses.",
	})

	// DatasetRows reports the size of the most recently assembled dataset.
	DatasetRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "seoul_dashboard",
		Name:      "dataset_rows",
		Help:      "Rows in the merged dataset after normalization, by mode.",
	}, []string{"mode"})
)
