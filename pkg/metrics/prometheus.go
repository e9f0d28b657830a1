package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	BookingsConfirmed   *prometheus.CounterVec
	ValidationFailures  *prometheus.CounterVec
	PersistenceFailures prometheus.Counter
	StatusTransitions   *prometheus.CounterVec
	ConfirmationTime    prometheus.Histogram
	NotifyErrors        *prometheus.CounterVec
}

// NewMetrics registers the booking metrics on reg. A nil reg uses the default registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		BookingsConfirmed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_confirmed_total",
			Help:      "The total number of confirmed bookings by outcome",
		}, []string{"outcome"}),
		ValidationFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_validation_failures_total",
			Help:      "Booking attempts rejected for a missing field",
		}, []string{"field"}),
		PersistenceFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_persistence_failures_total",
			Help:      "Reservations that could not be written to the store",
		}),
		StatusTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reservation_status_transitions_total",
			Help:      "Operator status updates by target status and result",
		}, []string{"status", "result"}),
		ConfirmationTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "booking_confirmation_seconds",
			Help:      "Time taken to confirm a booking, including the processing delay",
			Buckets:   prometheus.DefBuckets,
		}),
		NotifyErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notification_errors_total",
			Help:      "Failed reservation notifications by sink",
		}, []string{"sink"}),
	}
}
