package infra

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records remote procedure calls.
type Metrics struct {
	Requests *prometheus.CounterVec
	Duration *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "finebook",
			Name:      "rpc_requests_total",
			Help:      "Remote procedure calls by procedure and result code.",
		}, []string{"procedure", "code"}),
		Duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "finebook",
			Name:      "rpc_duration_seconds",
			Help:      "Remote procedure call latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"procedure"}),
	}
	reg.MustRegister(m.Requests, m.Duration)
	return m
}
