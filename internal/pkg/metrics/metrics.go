package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for the booking service.
// Collectors are registered on a private registry so that several instances
// can coexist in one process (tests build more than one app).
type Metrics struct {
	Registry *prometheus.Registry

	BookingsCreated  prometheus.Counter
	BookingsRejected *prometheus.CounterVec
	BookingsCanceled prometheus.Counter
	PaymentsRecorded *prometheus.CounterVec
	PaymentCents     *prometheus.CounterVec
	HTTPRequests     *prometheus.CounterVec
	HTTPDuration     *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		BookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_created_total",
			Help: "Total number of committed bookings",
		}),

		BookingsRejected: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_bookings_rejected_total",
			Help: "Booking attempts rolled back, by reason",
		}, []string{"reason"}),

		BookingsCanceled: factory.NewCounter(prometheus.CounterOpts{
			Name: "hotel_bookings_canceled_total",
			Help: "Total number of cancelled bookings",
		}),

		PaymentsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_payments_recorded_total",
			Help: "Ledger rows appended, by payment status",
		}, []string{"status"}),

		PaymentCents: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_payment_amount_cents_total",
			Help: "Sum of ledger amounts in cents, by payment status",
		}, []string{"status"}),

		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "hotel_http_requests_total",
			Help: "HTTP requests by route, method and status",
		}, []string{"route", "method", "status"}),

		HTTPDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "hotel_http_request_duration_seconds",
			Help:    "HTTP request latency by route and method",
			Buckets: prometheus.DefBuckets,
		}, []string{"route", "method"}),
	}
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.BookingsCreated.Inc()
}

func (m *Metrics) BookingRejected(reason string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(reason).Inc()
}

func (m *Metrics) BookingCanceled() {
	if m == nil {
		return
	}
	m.BookingsCanceled.Inc()
}

func (m *Metrics) PaymentAppended(status string, cents int64) {
	if m == nil {
		return
	}
	m.PaymentsRecorded.WithLabelValues(status).Inc()
	m.PaymentCents.WithLabelValues(status).Add(float64(cents))
}

func (m *Metrics) ObserveHTTP(route, method, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(route, method, status).Inc()
	m.HTTPDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}
