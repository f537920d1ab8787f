// Package metrics exposes the Prometheus instruments of the booking API.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// BookingMetrics records the outcome and duration of booking creations.
type BookingMetrics struct {
	successes prometheus.Counter
	errors    prometheus.Counter
	duration  prometheus.Histogram
}

// NewBookingMetrics registers the booking instruments on reg.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	f := promauto.With(reg)
	return &BookingMetrics{
		successes: f.NewCounter(prometheus.CounterOpts{
			Name: "app_booking_create_count",
			Help: "Bookings created successfully.",
		}),
		errors: f.NewCounter(prometheus.CounterOpts{
			Name: "app_booking_create_error_count",
			Help: "Booking creations that failed for any reason.",
		}),
		duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "app_booking_create_time_seconds",
			Help:    "Time spent creating a booking, successful or not.",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// IncSuccess counts one successful booking creation.
func (m *BookingMetrics) IncSuccess() { m.successes.Inc() }

// IncError counts one failed booking creation.
func (m *BookingMetrics) IncError() { m.errors.Inc() }

// StartTimer starts a duration sample. The returned func observes it;
// calls after the first are ignored.
func (m *BookingMetrics) StartTimer() func() {
	t := prometheus.NewTimer(m.duration)
	var once sync.Once
	return func() {
		once.Do(func() { t.ObserveDuration() })
	}
}

// Handler serves the metrics gathered by g in the Prometheus text format.
func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
