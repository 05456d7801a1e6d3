// Package metrics registers the viewer's Prometheus instruments.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SimulationTicks counts executed physics ticks across all documents.
	SimulationTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kgraph_simulation_ticks_total",
		Help: "Number of force simulation ticks executed.",
	})

	// DroppedEdges counts edges discarded during ingestion because an
	// endpoint id did not resolve.
	DroppedEdges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kgraph_dropped_edges_total",
		Help: "Number of edges dropped for unresolved endpoints.",
	})

	// FetchFailures counts failed document and question fetches.
	FetchFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kgraph_fetch_failures_total",
		Help: "Number of failed fetches against the knowledge-graph service.",
	})

	// DocumentLoads counts successfully installed graph documents.
	DocumentLoads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kgraph_document_loads_total",
		Help: "Number of graph documents loaded and installed.",
	})
)

var alphaOnce sync.Once

// RegisterAlpha exposes the current cooling value of the live simulation.
// Only the first registration sticks; a viewer remounted within the same
// process keeps the original gauge.
func RegisterAlpha(alpha func() float64) {
	alphaOnce.Do(func() {
		prometheus.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "kgraph_simulation_alpha",
			Help: "Current alpha of the live force simulation.",
		}, alpha))
	})
}
