package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/bookings", "201", 0.25)
	RecordHTTPRequest("POST", "/bookings", "201", 0.1)
	RecordHTTPRequest("POST", "/bookings", "409", 0.05)

	created := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/bookings", "201"))
	conflict := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/bookings", "409"))

	assert.Equal(t, float64(2), created)
	assert.Equal(t, float64(1), conflict)
}

func TestRecordBooking(t *testing.T) {
	BookingsTotal.Reset()

	RecordBooking("reserved")
	RecordBooking("reserved")

	count := testutil.ToFloat64(BookingsTotal.WithLabelValues("reserved"))
	assert.Equal(t, float64(2), count)
}

func TestRecordBookingCancellation(t *testing.T) {
	testCounter := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tablebook_booking_cancellations_total_test",
			Help: "Total number of booking cancellations",
		},
	)

	oldCounter := BookingCancellationsTotal
	BookingCancellationsTotal = testCounter
	defer func() { BookingCancellationsTotal = oldCounter }()

	RecordBookingCancellation()
	RecordBookingCancellation()

	count := testutil.ToFloat64(testCounter)
	assert.Equal(t, float64(2), count)
}

func TestRecordAvailabilityCheck(t *testing.T) {
	AvailabilityChecksTotal.Reset()

	RecordAvailabilityCheck(true)
	RecordAvailabilityCheck(false)
	RecordAvailabilityCheck(false)

	admits := testutil.ToFloat64(AvailabilityChecksTotal.WithLabelValues("admit"))
	rejects := testutil.ToFloat64(AvailabilityChecksTotal.WithLabelValues("reject"))

	assert.Equal(t, float64(1), admits)
	assert.Equal(t, float64(2), rejects)
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("booking_confirmation", "success")
	RecordEmail("booking_confirmation", "failed")

	success := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "success"))
	failed := testutil.ToFloat64(EmailsSentTotal.WithLabelValues("booking_confirmation", "failed"))

	assert.Equal(t, float64(1), success)
	assert.Equal(t, float64(1), failed)
}

func TestEmailQueueLength(t *testing.T) {
	EmailQueueLength.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(EmailQueueLength))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}
