package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "actions_emitted_total",
		Help:      "Audit lines written, by category.",
	}, []string{"category"})
	metricSuppressed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "actions_suppressed_total",
		Help:      "Classified actions dropped by the debounce window, by category.",
	}, []string{"category"})
	metricUnmapped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "menu_clicks_unmapped_total",
		Help:      "Menu clicks intentionally left unclassified.",
	})
	metricSinkErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "sink_errors_total",
		Help:      "Audit lines the output failed to accept.",
	})
)
