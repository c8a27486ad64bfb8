// Package metrics exposes prometheus collectors for graph adaptation and
// preset activity. Registration is passive via promauto on the default
// registry; the hosting application decides whether and where to serve
// them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Adaptation metrics
	AdaptationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_adaptations_total",
			Help: "Total number of graph configuration adaptations performed",
		},
	)

	FieldsResolved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_fields_resolved_total",
			Help: "Total number of fields resolved to concrete log fields",
		},
	)

	FieldsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_fields_dropped_total",
			Help: "Total number of fields dropped because the target log lacks them",
		},
	)

	WildcardExpansions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_wildcard_expansions_total",
			Help: "Total number of wildcard field groups expanded",
		},
	)

	// Store metrics
	ConfigChanges = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_config_changes_total",
			Help: "Total number of configuration replacements installed",
		},
	)

	// Preset metrics
	PresetOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blackbox_graphs_preset_operations_total",
			Help: "Total number of preset store operations",
		},
		[]string{"operation", "backend", "status"},
	)
)
