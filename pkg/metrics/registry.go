package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Histogram bucket presets shared across components.
var (
	// DurationBuckets covers sub-millisecond calls up to multi-minute waits.
	DurationBuckets = []float64{.001, .005, .01, .05, .1, .5, 1, 5, 15, 30, 60, 120, 300}
	// CountBuckets covers small discrete counts such as poll attempts.
	CountBuckets = []float64{1, 2, 3, 5, 10, 20, 50, 100}
)

// ComponentRegistry namespaces collectors per component and keeps
// registration idempotent so tests can construct components repeatedly.
type ComponentRegistry struct {
	namespace string
	subsystem string
	reg       *prometheus.Registry
}

// NewComponentRegistry creates a registry for the given namespace/subsystem.
func NewComponentRegistry(namespace, subsystem string) *ComponentRegistry {
	return &ComponentRegistry{
		namespace: namespace,
		subsystem: subsystem,
		reg:       prometheus.NewRegistry(),
	}
}

// Handler exposes the component's collectors over HTTP.
func (c *ComponentRegistry) Handler() http.Handler {
	return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{})
}

// Gatherer returns the underlying gatherer for aggregation.
func (c *ComponentRegistry) Gatherer() prometheus.Gatherer {
	return c.reg
}

func (c *ComponentRegistry) register(col prometheus.Collector) {
	if err := c.reg.Register(col); err != nil {
		if _, ok := err.(prometheus.AlreadyRegisteredError); ok {
			return
		}
		panic(err)
	}
}

// NewCounter registers and returns a namespaced counter.
func (c *ComponentRegistry) NewCounter(opts prometheus.CounterOpts) prometheus.Counter {
	opts.Namespace, opts.Subsystem = c.namespace, c.subsystem
	col := prometheus.NewCounter(opts)
	c.register(col)
	return col
}

// NewCounterVec registers and returns a namespaced counter vector.
func (c *ComponentRegistry) NewCounterVec(opts prometheus.CounterOpts, labels []string) *prometheus.CounterVec {
	opts.Namespace, opts.Subsystem = c.namespace, c.subsystem
	col := prometheus.NewCounterVec(opts, labels)
	c.register(col)
	return col
}

// NewGauge registers and returns a namespaced gauge.
func (c *ComponentRegistry) NewGauge(opts prometheus.GaugeOpts) prometheus.Gauge {
	opts.Namespace, opts.Subsystem = c.namespace, c.subsystem
	col := prometheus.NewGauge(opts)
	c.register(col)
	return col
}

// NewGaugeVec registers and returns a namespaced gauge vector.
func (c *ComponentRegistry) NewGaugeVec(opts prometheus.GaugeOpts, labels []string) *prometheus.GaugeVec {
	opts.Namespace, opts.Subsystem = c.namespace, c.subsystem
	col := prometheus.NewGaugeVec(opts, labels)
	c.register(col)
	return col
}

// NewHistogram registers and returns a namespaced histogram.
func (c *ComponentRegistry) NewHistogram(opts prometheus.HistogramOpts) prometheus.Histogram {
	opts.Namespace, opts.Subsystem = c.namespace, c.subsystem
	col := prometheus.NewHistogram(opts)
	c.register(col)
	return col
}
