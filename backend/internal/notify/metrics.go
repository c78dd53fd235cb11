package notify

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	checksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "checks_total",
			Help:      "Content checks run against keyword alerts, by result",
		},
		[]string{"result"},
	)

	checksDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "checks_dropped_total",
			Help:      "Content checks dropped because the queue was full or closed",
		},
	)

	intentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "intents_total",
			Help:      "Notification intents produced, by matched field",
		},
		[]string{"field"},
	)

	deliveryFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "delivery_failures_total",
			Help:      "Notification intents that failed to deliver",
		},
	)

	invalidPatterns = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "invalid_patterns_total",
			Help:      "Alerts skipped because their keyword did not compile",
		},
	)

	queueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "bbs",
			Subsystem: "keyword",
			Name:      "queue_depth",
			Help:      "Content checks waiting for a worker",
		},
	)
)
