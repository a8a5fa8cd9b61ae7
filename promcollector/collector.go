// Package promcollector exports idxarena storage metrics to Prometheus.
//
//	c := promcollector.New(prometheus.DefaultRegisterer)
//	nodes := idxarena.New[Node](idxarena.WithName("nodes"), idxarena.WithMetricsCollector(c))
package promcollector

import (
	"github.com/hupe1980/idxarena"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "idxarena"

// Collector implements idxarena.MetricsCollector on top of Prometheus metrics.
// Series are labelled by container name and kind ("arena" or "map").
type Collector struct {
	grows            *prometheus.CounterVec
	capacity         *prometheus.GaugeVec
	capacityExceeded *prometheus.CounterVec
}

var _ idxarena.MetricsCollector = (*Collector)(nil)

// New creates a Collector and registers its metrics with reg.
// If reg is nil, the metrics are not registered.
func New(reg prometheus.Registerer) *Collector {
	c := &Collector{
		grows: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storage_grows_total",
			Help:      "Total storage segments allocated",
		}, []string{"name", "kind"}),
		capacity: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "capacity_slots",
			Help:      "Slots the container can hold without growing",
		}, []string{"name", "kind"}),
		capacityExceeded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "capacity_exceeded_total",
			Help:      "Allocations rejected because the 32-bit index space is full",
		}, []string{"name", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(c.grows, c.capacity, c.capacityExceeded)
	}
	return c
}

// RecordGrow implements idxarena.MetricsCollector.
func (c *Collector) RecordGrow(name, kind string, capacity int) {
	c.grows.WithLabelValues(name, kind).Inc()
	c.capacity.WithLabelValues(name, kind).Set(float64(capacity))
}

// RecordCapacityExceeded implements idxarena.MetricsCollector.
func (c *Collector) RecordCapacityExceeded(name, kind string) {
	c.capacityExceeded.WithLabelValues(name, kind).Inc()
}
