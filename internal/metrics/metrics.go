package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Name:      "http_requests_total",
			Help:      "HTTP requests by endpoint.",
		},
		[]string{"endpoint"},
	)

	reservationsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Name:      "reservations_created_total",
			Help:      "Bookings created, by source.",
		},
		[]string{"source"},
	)

	fallbackServed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Name:      "fallback_served_total",
			Help:      "Reads answered from static fallback data, by collection.",
		},
		[]string{"collection"},
	)

	storeWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Name:      "store_write_failures_total",
			Help:      "Booking writes that only reached the local cache.",
		},
	)

	statusTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "tavola",
			Name:      "status_transitions_total",
			Help:      "Booking status transitions, by from/to pair.",
		},
		[]string{"from", "to"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationsCreated,
			fallbackServed,
			storeWriteFailures,
			statusTransitions,
		)
	})
}

// IncHTTP increments the counter for an endpoint label.
func IncHTTP(endpoint string) {
	httpRequests.WithLabelValues(endpoint).Inc()
}

// IncReservation counts a created booking by source.
func IncReservation(source string) {
	reservationsCreated.WithLabelValues(source).Inc()
}

// IncFallback counts a read answered from the static fallback data.
func IncFallback(collection string) {
	fallbackServed.WithLabelValues(collection).Inc()
}

// IncStoreWriteFailure counts a booking write that stayed cache-local.
func IncStoreWriteFailure() {
	storeWriteFailures.Inc()
}

// IncStatusTransition counts a status change.
func IncStatusTransition(from, to string) {
	statusTransitions.WithLabelValues(from, to).Inc()
}
