package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CacheHits tracks cache hits by layer (memory, redis)
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotify_cache_hits_total",
			Help: "Total number of catalog cache hits",
		},
		[]string{"layer"},
	)

	// CacheMisses tracks cache misses by layer (memory, redis)
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotify_cache_misses_total",
			Help: "Total number of catalog cache misses",
		},
		[]string{"layer"},
	)

	// CacheEvictions tracks entries evicted from a bounded in-memory cache
	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotify_cache_evictions_total",
			Help: "Total number of entries evicted from the in-memory cache",
		},
		[]string{"layer"},
	)

	// CacheEntries reports resident entries per in-memory cache
	CacheEntries = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "spotify_cache_entries",
			Help: "Number of entries resident in the in-memory cache",
		},
		[]string{"cache"},
	)

	// CacheErrors tracks store operation errors
	CacheErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spotify_cache_errors_total",
			Help: "Total number of cache store operation errors",
		},
		[]string{"operation"}, // "get", "set", "delete"
	)
)
