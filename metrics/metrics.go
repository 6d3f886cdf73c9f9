// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package metrics

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "ules_voting"

// Prometheus holds the submission pipeline counters.
type Prometheus struct {
	registry          *prometheus.Registry
	submitAttempts    prometheus.Counter
	submitRetries     prometheus.Counter
	submissions       *prometheus.CounterVec
	fingerprintFaults *prometheus.CounterVec
}

// NewPrometheus registers the counters on a fresh registry.
func NewPrometheus() (*Prometheus, error) {
	m := &Prometheus{registry: prometheus.NewRegistry()}
	collectorsToRegister := make(map[string]prometheus.Collector)

	m.submitAttempts = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submit_attempts_total",
		Help:      "calls made to the tally service, retries included",
	})
	collectorsToRegister["submit attempts counter"] = m.submitAttempts

	m.submitRetries = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submit_retries_total",
		Help:      "backoff waits after a retryable failure",
	})
	collectorsToRegister["submit retries counter"] = m.submitRetries

	m.submissions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_total",
		Help:      "finished ballot submissions by outcome",
	}, []string{"outcome"})
	collectorsToRegister["submissions counter"] = m.submissions

	m.fingerprintFaults = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fingerprint_signal_faults_total",
		Help:      "fingerprint signals that degraded to an empty contribution",
	}, []string{"signal"})
	collectorsToRegister["fingerprint faults counter"] = m.fingerprintFaults

	for collectorName, collectorToRegister := range collectorsToRegister {
		err := m.registry.Register(collectorToRegister)
		if err != nil && !errors.As(err, &prometheus.AlreadyRegisteredError{}) {
			return nil, fmt.Errorf("cannot register %s: %w", collectorName, err)
		}
	}

	return m, nil
}

func (m *Prometheus) SubmitAttempted() {
	m.submitAttempts.Inc()
}

func (m *Prometheus) SubmitRetried() {
	m.submitRetries.Inc()
}

// SubmissionFinished counts an outcome ("succeeded", "failed").
func (m *Prometheus) SubmissionFinished(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}

func (m *Prometheus) FingerprintFault(signal string) {
	m.fingerprintFaults.WithLabelValues(signal).Inc()
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
