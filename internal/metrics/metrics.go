// Package metrics exposes matching run statistics in Prometheus format.
package metrics

import (
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/dhananjay-901/Al-Based-Allocation-Engine/internal/model"
)

// Outcome label values of RunsTotal.
const (
	OutcomeSuccess = "success"
	OutcomeInvalid = "invalid"
	OutcomeFailed  = "failed"
)

// Recorder collects run metrics on its own registry.
type Recorder struct {
	registry *prometheus.Registry

	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	MatchesTotal  *prometheus.GaugeVec
	RecordsLoaded *prometheus.GaugeVec
	LastSuccess   prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		RunsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "allocate_runs_total",
				Help: "Total number of matching runs by outcome",
			},
			[]string{"outcome"},
		),
		RunDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "allocate_run_duration_seconds",
				Help:    "Duration of matching runs in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
			},
		),
		MatchesTotal: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "allocate_matches",
				Help: "Matches produced by the last successful run by status",
			},
			[]string{"status"},
		),
		RecordsLoaded: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "allocate_records_loaded",
				Help: "Records scored by the last successful run",
			},
			[]string{"kind"},
		),
		LastSuccess: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "allocate_last_success_timestamp_seconds",
				Help: "Unix time the last successful run completed",
			},
		),
	}
}

// RecordRun implements engine.MetricsRecorder.
func (r *Recorder) RecordRun(run *model.Run, elapsed time.Duration, err error) {
	r.RunDuration.Observe(elapsed.Seconds())

	if err != nil {
		outcome := OutcomeFailed
		if errors.Is(err, model.ErrInvalidRecord) {
			outcome = OutcomeInvalid
		}
		r.RunsTotal.WithLabelValues(outcome).Inc()
		return
	}

	r.RunsTotal.WithLabelValues(OutcomeSuccess).Inc()
	r.MatchesTotal.WithLabelValues(string(model.StatusExcellent)).Set(float64(run.Excellent))
	r.MatchesTotal.WithLabelValues(string(model.StatusGood)).Set(float64(run.Good))
	r.MatchesTotal.WithLabelValues(string(model.StatusFair)).Set(float64(run.Fair))
	r.RecordsLoaded.WithLabelValues("candidates").Set(float64(run.CandidateCount))
	r.RecordsLoaded.WithLabelValues("opportunities").Set(float64(run.OpportunityCount))
	r.LastSuccess.Set(float64(run.CompletedAt.Unix()))
}

// Registry returns the registry the metrics are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes the metrics in the node exporter textfile format.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
