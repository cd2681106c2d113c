package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestIncBookingEvent(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "consultation-service")

	m.IncBookingEvent("booking.accepted")
	m.IncBookingEvent("booking.accepted")
	m.IncBookingEvent("booking.rejected")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookingEventsTotal.WithLabelValues("booking.accepted")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BookingEventsTotal.WithLabelValues("booking.rejected")))
}

func TestIncBookingEventOnNil(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.IncBookingEvent("booking.created") })
}

func TestIncAcceptConflict(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "consultation-service")

	m.IncAcceptConflict("slot_taken")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AcceptConflictsTotal.WithLabelValues("slot_taken")))

	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.IncAcceptConflict("version") })
}
