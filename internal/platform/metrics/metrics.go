package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the transport-level Prometheus metrics.
type Metrics struct {
	UpdatesReceived prometheus.Counter
	UpdatesIgnored  prometheus.Counter
}

// New creates and registers the transport metrics.
func New() *Metrics {
	return &Metrics{
		UpdatesReceived: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policr_updates_received_total",
			Help: "Webhook updates accepted for processing",
		}),
		UpdatesIgnored: promauto.NewCounter(prometheus.CounterOpts{
			Name: "policr_updates_ignored_total",
			Help: "Webhook updates carrying nothing the dispatcher handles",
		}),
	}
}
