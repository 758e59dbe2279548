// Package metrics exposes prometheus instrumentation for long-lived toxgo
// sessions (watch mode), counting configuration reloads, prepared
// environments and journal writes.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the toxgo metric instruments and their registry.
type Collector struct {
	registry *prometheus.Registry

	// ConfigReloads counts configuration re-resolutions triggered by watch
	// mode or the initial load.
	ConfigReloads prometheus.Counter

	// EnvsPrepared counts prepared environments, labelled by environment
	// name.
	EnvsPrepared *prometheus.CounterVec

	// JournalWrites counts run records written to the journal.
	JournalWrites prometheus.Counter

	// UnusedKeys tracks the number of unused keys found by the last audit.
	UnusedKeys prometheus.Gauge
}

// NewCollector builds a collector on its own registry. If registry is nil a
// fresh one is created.
func NewCollector(registry *prometheus.Registry) *Collector {
	if registry == nil {
		registry = prometheus.NewRegistry()
	}

	c := &Collector{
		registry: registry,
		ConfigReloads: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "toxgo",
			Name:      "config_reloads_total",
			Help:      "Number of configuration loads and watch-mode reloads.",
		}),
		EnvsPrepared: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "toxgo",
			Name:      "envs_prepared_total",
			Help:      "Number of prepared test environments.",
		}, []string{"env"}),
		JournalWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "toxgo",
			Name:      "journal_writes_total",
			Help:      "Number of run records written to the journal.",
		}),
		UnusedKeys: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "toxgo",
			Name:      "config_unused_keys",
			Help:      "Unused configuration keys found by the last audit.",
		}),
	}

	registry.MustRegister(c.ConfigReloads, c.EnvsPrepared, c.JournalWrites, c.UnusedKeys)
	return c
}

// Registry returns the underlying prometheus registry.
func (c *Collector) Registry() *prometheus.Registry { return c.registry }

// Handler returns an HTTP handler serving the collector's metrics.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
