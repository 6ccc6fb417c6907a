// Package metrics exposes Prometheus collectors for generation runs.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/roach88/lily/internal/engine"
)

// Collector records generation statistics. It implements engine.Recorder.
//
// Each Collector owns its registry, so tests and multiple servers in one
// process never collide on metric names.
type Collector struct {
	registry *prometheus.Registry

	generations *prometheus.CounterVec
	symbols     prometheus.Histogram
	vertices    prometheus.Histogram
	duration    prometheus.Histogram
}

var _ engine.Recorder = (*Collector)(nil)

// New creates a Collector with its own registry.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		generations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lily_generations_total",
				Help: "Generation runs by outcome.",
			},
			[]string{"outcome"},
		),
		symbols: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lily_expanded_symbols",
			Help:    "Symbols in the expanded string.",
			Buckets: prometheus.ExponentialBuckets(16, 4, 10),
		}),
		vertices: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lily_mesh_vertices",
			Help:    "Vertices in the generated mesh.",
			Buckets: prometheus.ExponentialBuckets(4, 4, 10),
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "lily_generation_duration_seconds",
			Help:    "Wall time of one generation.",
			Buckets: prometheus.DefBuckets,
		}),
	}
	c.registry.MustRegister(c.generations, c.symbols, c.vertices, c.duration)
	return c
}

// RecordGeneration records a successful run.
func (c *Collector) RecordGeneration(stats engine.Stats) {
	c.generations.WithLabelValues("ok").Inc()
	c.symbols.Observe(float64(stats.Symbols))
	c.vertices.Observe(float64(stats.Vertices))
	c.duration.Observe(stats.Duration.Seconds())
}

// RecordFailure records a run that stopped early. reason is "quota",
// "cancelled" or "error".
func (c *Collector) RecordFailure(reason string) {
	c.generations.WithLabelValues(reason).Inc()
}

// Registry returns the underlying registry.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the collector's metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
