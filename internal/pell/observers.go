// This file contains the progress-observation plumbing shared by the solver
// methods: a reporter callback type, a channel-backed observer for the CLI,
// a throttled zerolog observer, a Prometheus observer, and a no-op.
package pell

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

// ProgressReporter receives normalized progress values in [0, 1] from a
// running solver method. Reporters must be cheap and non-blocking; they are
// called from inside the solve loops.
type ProgressReporter func(progress float64)

// ProgressUpdate carries one progress notification from a solver method to
// the display layer.
type ProgressUpdate struct {
	// MethodIndex identifies which of the concurrently running methods
	// produced the update.
	MethodIndex int
	// Value is the normalized progress in [0, 1].
	Value float64
}

// ProgressObserver receives progress updates from running solver methods.
type ProgressObserver interface {
	// Update delivers the normalized progress of one method.
	Update(methodIndex int, progress float64)
}

// ─────────────────────────────────────────────────────────────────────────────
// Channel Observer
// ─────────────────────────────────────────────────────────────────────────────

// ChannelObserver forwards progress updates to a channel, which is how the
// CLI progress display consumes them.
type ChannelObserver struct {
	channel chan<- ProgressUpdate
}

// NewChannelObserver creates an observer that sends updates to ch. The
// channel should be buffered; a nil channel discards updates.
func NewChannelObserver(ch chan<- ProgressUpdate) *ChannelObserver {
	return &ChannelObserver{channel: ch}
}

// Update implements ProgressObserver with a non-blocking send: if the
// display lags, updates are dropped rather than stalling the solver.
func (o *ChannelObserver) Update(methodIndex int, progress float64) {
	if o.channel == nil {
		return
	}
	if progress > 1.0 {
		progress = 1.0
	}
	select {
	case o.channel <- ProgressUpdate{MethodIndex: methodIndex, Value: progress}:
	default:
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Logging Observer
// ─────────────────────────────────────────────────────────────────────────────

// LoggingObserver logs progress through zerolog, throttled so that only
// changes of at least a threshold fraction produce a log line.
type LoggingObserver struct {
	logger    zerolog.Logger
	threshold float64
	lastLog   map[int]float64
	mu        sync.Mutex
}

// NewLoggingObserver creates a throttled logging observer. A non-positive
// threshold defaults to 0.1 (log every 10% of progress).
func NewLoggingObserver(logger zerolog.Logger, threshold float64) *LoggingObserver {
	if threshold <= 0 {
		threshold = 0.1
	}
	return &LoggingObserver{
		logger:    logger,
		threshold: threshold,
		lastLog:   make(map[int]float64),
	}
}

// Update implements ProgressObserver by logging significant changes.
func (o *LoggingObserver) Update(methodIndex int, progress float64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	last := o.lastLog[methodIndex]
	shouldLog := progress >= 1.0 ||
		last == 0 && progress > 0 ||
		progress-last >= o.threshold

	if shouldLog {
		o.logger.Debug().
			Int("method", methodIndex).
			Float64("progress", progress).
			Str("percent", fmt.Sprintf("%.1f%%", progress*100)).
			Msg("solver progress")
		o.lastLog[methodIndex] = progress
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Metrics Observer (Prometheus)
// ─────────────────────────────────────────────────────────────────────────────

var (
	// progressGauge tracks per-method solver progress. Registered once
	// globally to avoid duplicate registration errors.
	progressGauge = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pell_solver_progress",
			Help: "Current progress of Pell solver methods (0.0 to 1.0)",
		},
		[]string{"method_index"},
	)
)

// MetricsObserver exports solver progress to Prometheus.
type MetricsObserver struct {
	gauge *prometheus.GaugeVec
}

// NewMetricsObserver creates an observer backed by the global progress gauge.
func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{gauge: progressGauge}
}

// Update implements ProgressObserver by setting the gauge.
func (o *MetricsObserver) Update(methodIndex int, progress float64) {
	o.gauge.WithLabelValues(fmt.Sprintf("%d", methodIndex)).Set(progress)
}

// ResetMetrics clears the per-method gauges at the start of a new run.
func (o *MetricsObserver) ResetMetrics() {
	o.gauge.Reset()
}

// ─────────────────────────────────────────────────────────────────────────────
// No-Op Observer
// ─────────────────────────────────────────────────────────────────────────────

// NoOpObserver discards all updates. Useful in tests and whenever progress
// tracking is not wanted.
type NoOpObserver struct{}

// NewNoOpObserver creates a no-op observer.
func NewNoOpObserver() *NoOpObserver {
	return &NoOpObserver{}
}

// Update implements ProgressObserver by doing nothing.
func (o *NoOpObserver) Update(methodIndex int, progress float64) {
}

// FanOutReporter builds a ProgressReporter that forwards to every observer
// with a fixed method index. It adapts the per-method callback the solve
// loops use to the observer set the application configures.
func FanOutReporter(methodIndex int, observers ...ProgressObserver) ProgressReporter {
	return func(progress float64) {
		for _, obs := range observers {
			if obs != nil {
				obs.Update(methodIndex, progress)
			}
		}
	}
}
