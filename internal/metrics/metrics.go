package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts provider traffic. It is built on a caller-supplied registry
// so tests and parallel sessions never share counters.
type Metrics struct {
	Registry      *prometheus.Registry
	ProviderCalls *prometheus.CounterVec
	CallDuration  *prometheus.HistogramVec
	CacheLookups  *prometheus.CounterVec
	Plans         prometheus.Counter
}

func New(namespace string, reg *prometheus.Registry) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)
	return &Metrics{
		Registry: reg,
		ProviderCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_calls_total",
			Help:      "Flight provider calls by provider, operation and outcome",
		}, []string{"provider", "operation", "outcome"}),
		CallDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_call_duration_seconds",
			Help:      "Time spent in flight provider calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"provider", "operation"}),
		CacheLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_lookups_total",
			Help:      "Provider cache lookups by result",
		}, []string{"operation", "result"}),
		Plans: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "trip_plans_total",
			Help:      "The total number of trip plans computed",
		}),
	}
}
