// Package metrics exposes the pipeline's Prometheus instrumentation behind
// one registry so a serving collaborator can mount it wherever it likes.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every metric the pipeline updates
type Registry struct {
	registry *prometheus.Registry

	// ETL
	RowsCleaned    *prometheus.CounterVec
	CellsDegraded  prometheus.Counter
	MergesSkipped  *prometheus.CounterVec
	SourcesSkipped prometheus.Counter

	// Graph
	GraphNodesTotal  *prometheus.GaugeVec
	GraphEdgesTotal  *prometheus.GaugeVec
	ShadowNodesTotal prometheus.Gauge
	RebuildDuration  prometheus.Histogram
	RebuildsTotal    *prometheus.CounterVec

	// Snapshot
	SnapshotBytes    prometheus.Gauge
	SnapshotDuration *prometheus.HistogramVec
	SnapshotOpsTotal *prometheus.CounterVec
}

// NewRegistry creates a registry with all pipeline metrics registered
func NewRegistry() *Registry {
	r := &Registry{registry: prometheus.NewRegistry()}
	r.initETLMetrics()
	r.initGraphMetrics()
	r.initSnapshotMetrics()
	return r
}

// Prometheus returns the underlying registry for HTTP exposition
func (r *Registry) Prometheus() *prometheus.Registry {
	return r.registry
}

func (r *Registry) initETLMetrics() {
	r.RowsCleaned = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orggraph_etl_rows_cleaned_total",
			Help: "Rows emitted by the per-entity cleaners",
		},
		[]string{"source"},
	)

	r.CellsDegraded = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orggraph_etl_cells_degraded_total",
			Help: "Malformed cells degraded to unknown during cleaning",
		},
	)

	r.MergesSkipped = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orggraph_etl_merges_skipped_total",
			Help: "Best-effort merges skipped for lack of a join key",
		},
		[]string{"view"},
	)

	r.SourcesSkipped = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "orggraph_etl_sources_skipped_total",
			Help: "Source tables skipped because they could not be obtained",
		},
	)
}

func (r *Registry) initGraphMetrics() {
	r.GraphNodesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orggraph_graph_nodes_total",
			Help: "Nodes in the served graph, by kind",
		},
		[]string{"kind"},
	)

	r.GraphEdgesTotal = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "orggraph_graph_edges_total",
			Help: "Edges in the served graph, by kind",
		},
		[]string{"kind"},
	)

	r.ShadowNodesTotal = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orggraph_graph_shadow_nodes_total",
			Help: "Nodes still lacking attributes from their defining loader",
		},
	)

	r.RebuildDuration = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "orggraph_graph_rebuild_duration_seconds",
			Help:    "Full rebuild duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.RebuildsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orggraph_graph_rebuilds_total",
			Help: "Graph rebuilds, by outcome",
		},
		[]string{"status"},
	)
}

func (r *Registry) initSnapshotMetrics() {
	r.SnapshotBytes = promauto.With(r.registry).NewGauge(
		prometheus.GaugeOpts{
			Name: "orggraph_snapshot_bytes",
			Help: "Size of the last written snapshot blob in bytes",
		},
	)

	r.SnapshotDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "orggraph_snapshot_duration_seconds",
			Help:    "Snapshot save/load duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"operation"},
	)

	r.SnapshotOpsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "orggraph_snapshot_operations_total",
			Help: "Snapshot operations, by operation and outcome",
		},
		[]string{"operation", "status"},
	)
}

// ObserveGraph updates the graph gauges from a stats census
func (r *Registry) ObserveGraph(nodesByKind map[string]int, edgesByKind map[string]int, shadow int) {
	for kind, n := range nodesByKind {
		r.GraphNodesTotal.WithLabelValues(kind).Set(float64(n))
	}
	for kind, n := range edgesByKind {
		r.GraphEdgesTotal.WithLabelValues(kind).Set(float64(n))
	}
	r.ShadowNodesTotal.Set(float64(shadow))
}
