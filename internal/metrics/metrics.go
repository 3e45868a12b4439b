package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for identifier and URN checks
type Metrics struct {
	Checks      *prometheus.CounterVec
	CacheHits   prometheus.Counter
	StoreErrors prometheus.Counter
}

// New creates the collectors and registers them with reg. A nil reg uses a
// fresh registry so that independent instances (such as in tests) do not collide.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Checks: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "dlfcheck_checks_total",
			Help: "Total number of identifier and URN checks by kind and outcome",
		}, []string{"kind", "valid"}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "dlfcheck_cache_hits_total",
			Help: "Total number of checks answered from the result cache",
		}),
		StoreErrors: factory.NewCounter(prometheus.CounterOpts{
			Name: "dlfcheck_store_errors_total",
			Help: "Total number of check records that could not be persisted",
		}),
	}
}

// ObserveCheck counts one check of the given kind and outcome
func (m *Metrics) ObserveCheck(kind string, valid bool) {
	m.Checks.WithLabelValues(kind, strconv.FormatBool(valid)).Inc()
}
