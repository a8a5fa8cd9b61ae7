package idxarena

import (
	"sync/atomic"
)

// MetricsCollector defines an interface for collecting storage metrics.
// Implement this interface to integrate with monitoring systems like Prometheus
// (see the promcollector package).
//
// Collectors are only called on the slow paths: when a container allocates a new
// storage segment, and when an allocation is rejected.
type MetricsCollector interface {
	// RecordGrow is called after an arena or sparse map allocated storage.
	// capacity is the number of slots the container can now hold without growing.
	RecordGrow(name, kind string, capacity int)

	// RecordCapacityExceeded is called when an allocation is rejected because the
	// 32-bit index space is exhausted.
	RecordCapacityExceeded(name, kind string)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordGrow(string, string, int)        {}
func (NoopMetricsCollector) RecordCapacityExceeded(string, string) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and tests without external dependencies.
type BasicMetricsCollector struct {
	GrowCount             atomic.Int64
	MaxCapacity           atomic.Int64
	CapacityExceededCount atomic.Int64
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(_, _ string, capacity int) {
	b.GrowCount.Add(1)
	for {
		cur := b.MaxCapacity.Load()
		if int64(capacity) <= cur || b.MaxCapacity.CompareAndSwap(cur, int64(capacity)) {
			return
		}
	}
}

// RecordCapacityExceeded implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCapacityExceeded(string, string) {
	b.CapacityExceededCount.Add(1)
}

// Snapshot returns a point-in-time copy of the counters.
func (b *BasicMetricsCollector) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		GrowCount:             b.GrowCount.Load(),
		MaxCapacity:           b.MaxCapacity.Load(),
		CapacityExceededCount: b.CapacityExceededCount.Load(),
	}
}

// MetricsSnapshot is a point-in-time copy of BasicMetricsCollector.
type MetricsSnapshot struct {
	GrowCount             int64
	MaxCapacity           int64
	CapacityExceededCount int64
}
