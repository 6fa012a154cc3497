package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Collector owns the process metrics registry. All recording methods are
// safe on a nil receiver so callers can run without metrics wired.
type Collector struct {
	registry *prometheus.Registry

	operations    *prometheus.CounterVec
	usageRows     prometheus.Counter
	searches      *prometheus.CounterVec
	fetchDuration prometheus.Histogram
}

// NewCollector creates a collector with its own registry.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "larder_inventory_operations_total",
				Help: "Inventory lifecycle operations by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		usageRows: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "larder_usage_history_rows_total",
				Help: "Usage history rows written",
			},
		),
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "larder_recipe_searches_total",
				Help: "Recipe searches by result",
			},
			[]string{"result"},
		),
		fetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "larder_recipe_fetch_duration_seconds",
				Help:    "Time spent fetching and parsing the recipe site",
				Buckets: prometheus.DefBuckets,
			},
		),
	}

	c.registry.MustRegister(c.operations, c.usageRows, c.searches, c.fetchDuration)
	return c
}

// Handler exposes the registry for a metrics HTTP server.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// RecordOperation counts one inventory operation.
func (c *Collector) RecordOperation(action, outcome string) {
	if c == nil {
		return
	}
	c.operations.WithLabelValues(action, outcome).Inc()
}

// RecordUsageRows counts history rows written.
func (c *Collector) RecordUsageRows(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.usageRows.Add(float64(n))
}

// RecordSearch counts one recipe search and its fetch duration.
func (c *Collector) RecordSearch(result string, seconds float64) {
	if c == nil {
		return
	}
	c.searches.WithLabelValues(result).Inc()
	if seconds > 0 {
		c.fetchDuration.Observe(seconds)
	}
}
