package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stringgenetics/internal/logging"
)

const namespace = "stringgenetics"

// Collector exports per-generation evolution gauges on its own registry
type Collector struct {
	registry *prometheus.Registry

	generation  prometheus.Gauge
	generations prometheus.Counter
	bestFitness prometheus.Gauge
	meanFitness prometheus.Gauge
	converged   prometheus.Gauge
}

// NewCollector creates and registers the run's metrics
func NewCollector(runID string) *Collector {
	labels := prometheus.Labels{"run_id": runID}

	c := &Collector{
		registry: prometheus.NewRegistry(),
		generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "generation",
			Help:        "Current generation of the population.",
			ConstLabels: labels,
		}),
		generations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace:   namespace,
			Name:        "generations_total",
			Help:        "Generation steps completed.",
			ConstLabels: labels,
		}),
		bestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "best_fitness",
			Help:        "Fitness of the best candidate in the current generation.",
			ConstLabels: labels,
		}),
		meanFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "mean_fitness",
			Help:        "Mean fitness of the current generation.",
			ConstLabels: labels,
		}),
		converged: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "converged",
			Help:        "1 once the best candidate reached the target fitness.",
			ConstLabels: labels,
		}),
	}

	c.registry.MustRegister(c.generation, c.generations, c.bestFitness, c.meanFitness, c.converged)
	return c
}

// Observe records a generation summary
func (c *Collector) Observe(s logging.GenerationSummary) {
	c.generation.Set(float64(s.Generation))
	c.generations.Inc()
	c.bestFitness.Set(s.BestFitness)
	c.meanFitness.Set(s.MeanFitness)
}

// MarkConverged flags the run as converged
func (c *Collector) MarkConverged() {
	c.converged.Set(1)
}

// Registry returns the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}
