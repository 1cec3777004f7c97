package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricRecords = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "records_read_total",
		Help:      "Transcript records received from the connector.",
	})
	metricSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "actionlog",
		Name:      "records_skipped_total",
		Help:      "Transcript records dropped as malformed.",
	})
)
