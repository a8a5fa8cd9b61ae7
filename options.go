package idxarena

import (
	"context"
)

const (
	kindArena = "arena"
	kindMap   = "map"
)

type options struct {
	name             string
	logger           *Logger
	metricsCollector MetricsCollector
	segmentBits      int
	segmentBitsSet   bool
}

// Option configures an Arena or Map constructor.
//
// Containers built without options (including zero values) log nothing and
// collect no metrics.
type Option func(*options)

// WithName labels the container in log records and metrics.
func WithName(name string) Option {
	return func(o *options) {
		o.name = name
	}
}

// WithLogger enables structured logging of storage growth and capacity failures.
//
// Growth is logged at debug level, capacity failures at error level.
// If nil is passed, logging stays disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetricsCollector reports storage growth and capacity failures to mc.
//
// If nil is passed, metrics stay disabled.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithSegmentBits sizes the first storage segment at 1<<bits slots.
//
// Each later segment doubles the previous one. Small values suit many small
// containers; large values avoid a burst of early segment allocations when the
// final size is known to be big. Values are clamped to [0, 20]; the default is 4.
func WithSegmentBits(bits int) Option {
	return func(o *options) {
		o.segmentBits = bits
		o.segmentBitsSet = true
	}
}

func applyOptions(opts []Option) *options {
	if len(opts) == 0 {
		return nil
	}
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger != nil && o.name != "" {
		o.logger = o.logger.WithName(o.name)
	}
	return o
}

func (o *options) recordGrow(kind string, segments, capacity int) {
	if o == nil {
		return
	}
	if o.logger != nil {
		o.logger.LogGrow(context.Background(), kind, segments, capacity)
	}
	if o.metricsCollector != nil {
		o.metricsCollector.RecordGrow(o.name, kind, capacity)
	}
}

func (o *options) recordCapacityExceeded(kind string, length int, err error) {
	if o == nil {
		return
	}
	if o.logger != nil {
		o.logger.LogCapacityExceeded(context.Background(), kind, length, err)
	}
	if o.metricsCollector != nil {
		o.metricsCollector.RecordCapacityExceeded(o.name, kind)
	}
}
