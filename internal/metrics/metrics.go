// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/tipsplit/internal/models"
)

const namespace = "tipsplit"

// Metrics groups the collectors used by the service and its interceptors.
type Metrics struct {
	RPCRequests   *prometheus.CounterVec
	RPCDuration   *prometheus.HistogramVec
	Distributions prometheus.Counter
	Overflows     prometheus.Counter
	Sessions      prometheus.Gauge
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		RPCRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "RPC calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		RPCDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "rpc_duration_seconds",
			Help:      "RPC handling time.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
		Distributions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "distributions_total",
			Help:      "Split calculations performed.",
		}),
		Overflows: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "overflows_total",
			Help:      "Calculations where locked amounts exceeded the grand total.",
		}),
		Sessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Sessions currently held in memory.",
		}),
	}
	reg.MustRegister(m.RPCRequests, m.RPCDuration, m.Distributions, m.Overflows, m.Sessions)
	return m
}

// ObserveResult records one calculation. Safe to call on a nil *Metrics.
func (m *Metrics) ObserveResult(r models.DistributionResult) {
	if m == nil {
		return
	}
	m.Distributions.Inc()
	if r.IsOverflow {
		m.Overflows.Inc()
	}
}
