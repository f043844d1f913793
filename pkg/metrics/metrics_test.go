package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveBooking(t *testing.T) {
	m := New("test")

	m.ObserveBooking("book", "success")
	m.ObserveBooking("book", "success")
	m.ObserveBooking("book", "slot_taken")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.BookingOperations.WithLabelValues("book", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.BookingOperations.WithLabelValues("book", "slot_taken")))
}

func TestObserveBooking_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveBooking("book", "success") })
}

func TestHandler_ExposesOwnRegistry(t *testing.T) {
	m := New("test")
	m.ObserveBooking("cancel", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "booking_operations_total"))
}
