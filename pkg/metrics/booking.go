package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics records booking pipeline outcomes.
type BookingMetrics struct {
	finalized           *prometheus.CounterVec
	conflicts           prometheus.Counter
	notificationFailure prometheus.Counter
	duration            prometheus.Histogram
}

// NewBookingMetrics registers the booking metrics on the provided registerer.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	if reg == nil {
		return &BookingMetrics{}
	}
	finalized := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_finalized_total",
		Help: "Finalized bookings by payment method.",
	}, []string{"method"})
	conflicts := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_conflict_total",
		Help: "Bookings aborted due to a reservation conflict at finalization.",
	})
	notificationFailure := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "booking_notification_failure_total",
		Help: "Confirmation notifications that could not be delivered.",
	})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "booking_finalize_duration_seconds",
		Help:    "Duration of booking finalization in seconds.",
		Buckets: prometheus.DefBuckets,
	})
	reg.MustRegister(finalized, conflicts, notificationFailure, duration)
	return &BookingMetrics{
		finalized:           finalized,
		conflicts:           conflicts,
		notificationFailure: notificationFailure,
		duration:            duration,
	}
}

// IncFinalized increments the finalized counter for the payment method.
func (b *BookingMetrics) IncFinalized(method string) {
	if b == nil || b.finalized == nil {
		return
	}
	if method == "" {
		method = "unknown"
	}
	b.finalized.WithLabelValues(method).Inc()
}

// IncConflict increments the conflict counter.
func (b *BookingMetrics) IncConflict() {
	if b == nil || b.conflicts == nil {
		return
	}
	b.conflicts.Inc()
}

// IncNotificationFailure increments the notification failure counter.
func (b *BookingMetrics) IncNotificationFailure() {
	if b == nil || b.notificationFailure == nil {
		return
	}
	b.notificationFailure.Inc()
}

// ObserveFinalizeDuration records how long finalization took.
func (b *BookingMetrics) ObserveFinalizeDuration(d time.Duration) {
	if b == nil || b.duration == nil {
		return
	}
	b.duration.Observe(d.Seconds())
}
