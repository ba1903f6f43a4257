package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics.
type Metrics struct {
	// Queue related metrics
	QueueLength           prometheus.Gauge
	QueueEstimates        prometheus.Counter
	QueueEstimatedWait    prometheus.Histogram
	QueueEventsPublished  prometheus.Counter
	QueueEventsFailed     prometheus.Counter
	StatisticsRunsTotal   *prometheus.CounterVec
	StatisticsRunDuration prometheus.Histogram

	// Appointment metrics
	AppointmentsByStatus *prometheus.CounterVec
}

// New creates and registers all application metrics.
func New(namespace, subsystem string) *Metrics {
	return &Metrics{
		QueueLength: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_length",
			Help:      "Number of non-cancelled appointments in today's queue",
		}),
		QueueEstimates: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_estimates_total",
			Help:      "Total number of queue position estimates computed",
		}),
		QueueEstimatedWait: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_estimated_wait_minutes",
			Help:      "Distribution of estimated wait times handed to patients",
			Buckets:   []float64{0, 15, 30, 45, 60, 90, 120, 180, 240},
		}),
		QueueEventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_events_published_total",
			Help:      "Total number of queue update events published to the broker",
		}),
		QueueEventsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "queue_events_failed_total",
			Help:      "Total number of queue update events that failed to publish",
		}),
		StatisticsRunsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "statistics_runs_total",
			Help:      "Total number of queue statistics aggregation runs",
		}, []string{"status"}),
		StatisticsRunDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "statistics_run_duration_seconds",
			Help:      "Time spent aggregating daily queue statistics",
			Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}),
		AppointmentsByStatus: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "appointments_total",
			Help:      "Total number of appointment state transitions",
		}, []string{"status"}),
	}
}
