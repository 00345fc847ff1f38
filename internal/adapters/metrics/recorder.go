// Package metrics records pipeline measurements in a Prometheus registry.
package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.trai.ch/avert/internal/core/domain"
	"go.trai.ch/avert/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Metrics = (*Recorder)(nil)

const namespace = "avert"

// Recorder implements ports.Metrics. A nil Recorder discards all measurements.
type Recorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	outcomes      *prom.CounterVec
}

// NewRecorder constructs the metrics and registers them with reg.
// A nil reg gets a fresh registry.
func NewRecorder(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		registry: reg,
		stageDuration: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of execution pipeline stages",
			Buckets:   prom.DefBuckets,
		}, []string{"stage"}),
		outcomes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unit_outcomes_total",
			Help:      "Units of work by terminal outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(r.stageDuration, r.outcomes)
	return r
}

// ObserveStage records the duration of a pipeline stage.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// RecordOutcome counts a unit's terminal outcome.
func (r *Recorder) RecordOutcome(outcome domain.Outcome) {
	if r == nil {
		return
	}
	r.outcomes.WithLabelValues(string(outcome)).Inc()
}

// WriteTextfile writes the registry in the text exposition format, as read by
// the node exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prom.WriteToTextfile(path, r.registry); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMetricsWriteFailed.Error()), "path", path)
	}
	return nil
}
