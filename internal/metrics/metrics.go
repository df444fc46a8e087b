// Package metrics counts pipeline outcomes.
package metrics

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Operations.
const (
	OpPhoto   = "photo"
	OpProfile = "profile"
	OpSignIn  = "sign_in"
	OpSignUp  = "sign_up"
)

// Outcomes.
const (
	OutcomeSuccess    = "success"
	OutcomeCancelled  = "cancelled"
	OutcomeInvalid    = "invalid"
	OutcomeConstraint = "constraint"
	OutcomeKnown      = "known_error"
	OutcomeUnknown    = "unknown_error"
	OutcomeBusy       = "busy"
)

// Pipeline records submission outcomes on its own registry.
type Pipeline struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	duration    *prometheus.HistogramVec

	observed atomic.Bool
}

// NewPipeline creates the pipeline collectors.
func NewPipeline() *Pipeline {
	p := &Pipeline{
		registry: prometheus.NewRegistry(),
		submissions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "gymfit",
			Name:      "submissions_total",
			Help:      "Submission attempts by operation and outcome.",
		}, []string{"operation", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "gymfit",
			Name:      "submission_duration_seconds",
			Help:      "Duration of submissions that reached the network.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
	p.registry.MustRegister(p.submissions, p.duration)
	return p
}

// Observe counts one attempt.
func (p *Pipeline) Observe(operation, outcome string) {
	if p == nil {
		return
	}
	p.submissions.WithLabelValues(operation, outcome).Inc()
	p.observed.Store(true)
}

// ObserveDuration records how long a network round-trip took.
func (p *Pipeline) ObserveDuration(operation string, d time.Duration) {
	if p == nil {
		return
	}
	p.duration.WithLabelValues(operation).Observe(d.Seconds())
	p.observed.Store(true)
}

// Observed reports whether anything was recorded.
func (p *Pipeline) Observed() bool {
	return p != nil && p.observed.Load()
}

// WriteFile writes the text exposition format to path. A pipeline that
// recorded nothing leaves an existing file untouched.
func (p *Pipeline) WriteFile(path string) error {
	if !p.Observed() {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}
