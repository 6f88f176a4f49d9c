package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsCreated   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "bookings_created_total", Help: "Total bookings created"})
	BookingsCancelled = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "bookings_cancelled_total", Help: "Total bookings cancelled"})
	BookingsCompleted = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "bookings_completed_total", Help: "Total bookings completed"})
	ReconfirmPrompts  = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "reconfirm_prompts_total", Help: "Reconfirmation prompts shown to riders"})
	QuotesServed      = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "quotes_served_total", Help: "Fare quotes computed"})
	GeofenceRejects   = promauto.NewCounter(prometheus.CounterOpts{Namespace: "ridemoto", Name: "geofence_rejects_total", Help: "Dropoffs rejected by the service-area checks"})

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{Namespace: "ridemoto", Name: "http_requests_total", Help: "Total HTTP requests handled"},
		[]string{"method", "path", "status"},
	)
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "ridemoto",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
