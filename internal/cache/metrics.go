package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_operations_total",
		Help: "Total number of in-memory cache operations",
	}, []string{"operation", "status"})

	cacheEvictions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_cache_evictions_total",
		Help: "Total number of expired entries removed from the in-memory cache",
	}, []string{"reason"})

	cacheEntries = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "storefront_cache_entries",
		Help: "Number of entries left in the in-memory cache after the last sweep",
	})
)
