package s3os

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// dictMetrics holds optional Prometheus counters for Dict operations.
// A nil *dictMetrics is valid and records nothing.
type dictMetrics struct {
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
	remoteOps   *prometheus.CounterVec // by operation: store, retrieve, delete, list
}

// newDictMetrics creates and registers dict metrics with the provided
// registerer. The dict ID is attached as a constant label so multiple
// dicts can register against one registry.
func newDictMetrics(reg prometheus.Registerer, id string) (*dictMetrics, error) {
	m := &dictMetrics{
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "s3os",
			Subsystem:   "dict",
			Name:        "cache_hits_total",
			Help:        "Total number of local cache hits.",
			ConstLabels: prometheus.Labels{"dict": id},
		}),
		cacheMisses: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   "s3os",
			Subsystem:   "dict",
			Name:        "cache_misses_total",
			Help:        "Total number of local cache misses.",
			ConstLabels: prometheus.Labels{"dict": id},
		}),
		remoteOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace:   "s3os",
			Subsystem:   "dict",
			Name:        "remote_operations_total",
			Help:        "Total number of remote object store operations.",
			ConstLabels: prometheus.Labels{"dict": id},
		}, []string{"operation"}),
	}

	for _, c := range []prometheus.Collector{m.cacheHits, m.cacheMisses, m.remoteOps} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("register dict metrics: %w", err)
		}
	}
	return m, nil
}

// recordCacheHit records a cache hit.
func (m *dictMetrics) recordCacheHit() {
	if m != nil {
		m.cacheHits.Inc()
	}
}

// recordCacheMiss records a cache miss.
func (m *dictMetrics) recordCacheMiss() {
	if m != nil {
		m.cacheMisses.Inc()
	}
}

// recordOp records a remote operation metric.
func (m *dictMetrics) recordOp(operation string) {
	if m != nil {
		m.remoteOps.WithLabelValues(operation).Inc()
	}
}
