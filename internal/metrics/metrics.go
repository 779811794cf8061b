// Package metrics holds the Prometheus instrumentation for source adapter invocations.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcomes recorded for a settled source invocation.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeError   = "error"
	OutcomePanic   = "panic"
	OutcomeSkipped = "skipped" // required credential missing, never invoked
)

var (
	SourceRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "music_events",
		Subsystem: "source",
		Name:      "requests_total",
		Help:      "Total number of source invocations by outcome.",
	}, []string{"source", "outcome"})

	SourceEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "music_events",
		Subsystem: "source",
		Name:      "events_total",
		Help:      "Total number of normalized events returned per source.",
	}, []string{"source"})

	SourceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "music_events",
		Subsystem: "source",
		Name:      "duration_seconds",
		Help:      "Time spent in a single source invocation.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 20, 30},
	}, []string{"source"})

	// ScraperStrategies is labelled by strategy name and one of
	// matched, blocked, transport_error, empty.
	ScraperStrategies = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "music_events",
		Subsystem: "scraper",
		Name:      "strategy_total",
		Help:      "Scraper strategy attempts by outcome.",
	}, []string{"strategy", "outcome"})
)

// ObserveSource records one settled source invocation.
func ObserveSource(source, outcome string, events int, took time.Duration) {
	SourceRequests.WithLabelValues(source, outcome).Inc()
	SourceDuration.WithLabelValues(source).Observe(took.Seconds())
	if events > 0 {
		SourceEvents.WithLabelValues(source).Add(float64(events))
	}
}
