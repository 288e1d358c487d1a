// Package metrics defines the Prometheus instruments exported by the service.
// All instruments are registered on an injectable Registerer so tests can use
// a private registry instead of the process-global default.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds every instrument the service records. A single instance is
// created at startup and shared by the packages that record observations.
type Metrics struct {
	// SessionTransitions counts session status transitions by target status.
	SessionTransitions *prometheus.CounterVec

	// ReviewsSubmitted counts accepted review submissions.
	ReviewsSubmitted prometheus.Counter

	// CalendarEvents counts calendar provider outcomes by result
	// (created or failed).
	CalendarEvents *prometheus.CounterVec

	// RecalcDuration observes the wall time of aggregate recalculations.
	RecalcDuration prometheus.Histogram
}

// New creates and registers all instruments on reg. Passing
// prometheus.DefaultRegisterer wires them to the standard /metrics handler.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		SessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mentorhub",
			Subsystem: "sessions",
			Name:      "transitions_total",
			Help:      "Session status transitions by target status.",
		}, []string{"to_status"}),
		ReviewsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mentorhub",
			Subsystem: "reviews",
			Name:      "submitted_total",
			Help:      "Reviews accepted for completed sessions.",
		}),
		CalendarEvents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mentorhub",
			Subsystem: "calendar",
			Name:      "events_total",
			Help:      "Calendar provider outcomes by result.",
		}, []string{"result"}),
		RecalcDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mentorhub",
			Subsystem: "aggregates",
			Name:      "recalc_duration_seconds",
			Help:      "Wall time of profile aggregate recalculations.",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		m.SessionTransitions,
		m.ReviewsSubmitted,
		m.CalendarEvents,
		m.RecalcDuration,
	)

	return m
}

// ObserveRecalc records a recalculation that started at the given time.
func (m *Metrics) ObserveRecalc(start time.Time) {
	m.RecalcDuration.Observe(time.Since(start).Seconds())
}
