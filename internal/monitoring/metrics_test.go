package monitoring

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackBookingAndPayment(t *testing.T) {
	bookings := testutil.ToFloat64(bookingsCreated)
	payments := testutil.ToFloat64(paymentsCompleted)

	TrackBookingCreated()
	TrackPaymentCompleted(100)

	assert.Equal(t, bookings+1, testutil.ToFloat64(bookingsCreated))
	assert.Equal(t, payments+1, testutil.ToFloat64(paymentsCompleted))
}

func TestTrackRegistration(t *testing.T) {
	before := testutil.ToFloat64(registrations.WithLabelValues(OutcomeDuplicate))

	TrackRegistration(OutcomeDuplicate)
	TrackRegistration(OutcomeDuplicate)

	assert.Equal(t, before+2, testutil.ToFloat64(registrations.WithLabelValues(OutcomeDuplicate)))
}

func TestTrackRequest(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/events/:id", "404"))

	TrackRequest("GET", "/api/events/:id", 404, 15*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/api/events/:id", "404")))
}
