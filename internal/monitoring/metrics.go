package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes
const (
	OutcomeConfirmed        = "confirmed"
	OutcomeCapacityExceeded = "capacity_exceeded"
	OutcomeDuplicate        = "duplicate"
	OutcomeCancelled        = "cancelled"
)

var (
	bookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bookings_created_total",
			Help: "Total bookings created",
		},
	)

	paymentsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_completed_total",
			Help: "Total payments completed",
		},
	)

	paymentAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_amount",
			Help:    "Amount of completed payments",
			Buckets: prometheus.ExponentialBuckets(1, 2, 14),
		},
	)

	registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "event_registrations_total",
			Help: "Event registration attempts by outcome",
		},
		[]string{"outcome"},
	)

	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// TrackBookingCreated counts a new booking
func TrackBookingCreated() {
	bookingsCreated.Inc()
}

// TrackPaymentCompleted counts a payment and observes its amount
func TrackPaymentCompleted(amount float64) {
	paymentsCompleted.Inc()
	paymentAmount.Observe(amount)
}

// TrackRegistration counts a registration attempt or cancellation
func TrackRegistration(outcome string) {
	registrations.WithLabelValues(outcome).Inc()
}

// TrackRequest records one served HTTP request
func TrackRequest(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}
