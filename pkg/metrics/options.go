// Package metrics provides Prometheus metrics for the game backend.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option adjusts how Configure builds the backend collectors.
type Option func(*Manager)

// WithNamespace replaces the "gamekit" metric name prefix. Empty keeps it.
func WithNamespace(namespace string) Option {
	return func(m *Manager) {
		if namespace != "" {
			m.namespace = namespace
		}
	}
}

// WithSubsystem replaces "backend", the second part of every metric name,
// e.g. gamekit_backend_malformed_bodies_total.
func WithSubsystem(subsystem string) Option {
	return func(m *Manager) {
		if subsystem != "" {
			m.subsystem = subsystem
		}
	}
}

// WithHistogramBuckets sets the buckets of the request and platform call
// duration histograms, in milliseconds.
func WithHistogramBuckets(buckets []float64) Option {
	return func(m *Manager) {
		if len(buckets) > 0 {
			m.histogramBuckets = buckets
		}
	}
}

// WithRefreshInterval sets how often cmd/main refreshes the goroutine and
// memory gauges.
func WithRefreshInterval(interval time.Duration) Option {
	return func(m *Manager) {
		if interval > 0 {
			m.refreshInterval = interval
		}
	}
}

// WithConstLabels stamps every series with fixed labels. The server passes
// the platform game_id so scrapes from several games can be told apart.
func WithConstLabels(labels map[string]string) Option {
	return func(m *Manager) {
		if labels != nil {
			m.constLabels = labels
		}
	}
}

// WithPrometheusRegistry registers the collectors somewhere other than the
// package registry served on /healthz. Tests use it for isolation.
func WithPrometheusRegistry(registry prometheus.Registerer) Option {
	return func(m *Manager) {
		if registry != nil {
			m.registry = registry
		}
	}
}
