package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ViewCacheHits counts dashboard views served from the cache.
	ViewCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_cache_hits_total",
			Help: "Dashboard views served from the cache",
		},
		[]string{"key"},
	)

	// ViewCacheMisses counts dashboard views recomputed from the ledger.
	ViewCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_cache_misses_total",
			Help: "Dashboard views recomputed from the ledger",
		},
		[]string{"key"},
	)

	// LedgerFetches counts full ledger reads from the database.
	LedgerFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ledger_fetches_total",
			Help: "Full ledger reads from the database",
		},
		[]string{"table"},
	)

	// SkippedRecords tracks raw records dropped by the latest normalization.
	SkippedRecords = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "normalize_skipped_records",
			Help: "Raw records dropped by the latest normalization pass",
		},
	)
)
