// Package prom exports key lifecycle metrics to Prometheus.
package prom

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Observer implements the local.Observer interface backed by Prometheus
// collectors, labelled by key name.
type Observer struct {
	scopesEntered    *prometheus.CounterVec
	scopesExited     *prometheus.CounterVec
	pollsTotal       *prometheus.CounterVec
	futuresCompleted *prometheus.CounterVec
	pollDuration     *prometheus.HistogramVec
	valuesTaken      *prometheus.CounterVec
	reentrancy       *prometheus.CounterVec
}

// New returns an Observer with unregistered collectors. Call Register to
// attach them to a registry.
func New() *Observer {
	keyLabel := []string{"key"}
	return &Observer{
		scopesEntered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "scopes_entered_total",
			Help:      "Scope entries per key.",
		}, keyLabel),
		scopesExited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "scopes_exited_total",
			Help:      "Scope exits per key.",
		}, keyLabel),
		pollsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "future_polls_total",
			Help:      "Resumption steps of scoped futures per key.",
		}, keyLabel),
		futuresCompleted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "futures_completed_total",
			Help:      "Scoped futures driven to completion per key.",
		}, keyLabel),
		pollDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tasklocal",
			Name:      "future_poll_duration_seconds",
			Help:      "Duration of individual resumption steps.",
			Buckets:   prometheus.DefBuckets,
		}, keyLabel),
		valuesTaken: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "values_taken_total",
			Help:      "Values extracted from scoped futures per key.",
		}, keyLabel),
		reentrancy: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tasklocal",
			Name:      "reentrancy_rejections_total",
			Help:      "Rejected overlapping entries on shared keys.",
		}, keyLabel),
	}
}

// Register attaches all collectors to reg.
func (o *Observer) Register(reg prometheus.Registerer) error {
	collectors := []prometheus.Collector{
		o.scopesEntered, o.scopesExited, o.pollsTotal, o.futuresCompleted,
		o.pollDuration, o.valuesTaken, o.reentrancy,
	}
	for _, c := range collectors {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister is like Register but panics on error.
func (o *Observer) MustRegister(reg prometheus.Registerer) {
	if err := o.Register(reg); err != nil {
		panic(err)
	}
}

// ScopeEntered records a scope entry.
func (o *Observer) ScopeEntered(key string) {
	o.scopesEntered.WithLabelValues(key).Inc()
}

// ScopeExited records a scope exit.
func (o *Observer) ScopeExited(key string) {
	o.scopesExited.WithLabelValues(key).Inc()
}

// FuturePolled records one resumption step and its duration.
func (o *Observer) FuturePolled(key string, dur time.Duration, done bool) {
	o.pollsTotal.WithLabelValues(key).Inc()
	o.pollDuration.WithLabelValues(key).Observe(dur.Seconds())
	if done {
		o.futuresCompleted.WithLabelValues(key).Inc()
	}
}

// ValueTaken records a value extraction.
func (o *Observer) ValueTaken(key string) {
	o.valuesTaken.WithLabelValues(key).Inc()
}

// ReentrancyRejected records a rejected overlapping entry.
func (o *Observer) ReentrancyRejected(key string) {
	o.reentrancy.WithLabelValues(key).Inc()
}
