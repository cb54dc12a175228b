package presets

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PresetOperations tracks store operations by kind
	PresetOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallhaven_preset_operations_total",
			Help: "Total number of preset store operations",
		},
		[]string{"operation"}, // "save", "get", "list", "delete"
	)

	// PresetMisses tracks lookups of presets that do not exist
	PresetMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallhaven_preset_misses_total",
			Help: "Total number of lookups for unknown presets",
		},
	)

	// PresetErrors tracks store operation errors
	PresetErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallhaven_preset_errors_total",
			Help: "Total number of preset store errors",
		},
		[]string{"operation"},
	)
)
