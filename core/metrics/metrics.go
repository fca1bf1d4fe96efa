package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency by method, route, and status.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	EventsJoinedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_joined_total",
		Help: "Successful event join transitions.",
	})

	EventsLeftTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "events_left_total",
		Help: "Successful event leave transitions.",
	})

	JoinRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "events_join_rejected_total",
		Help: "Join attempts rejected, by reason.",
	}, []string{"reason"})

	NotificationsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_created_total",
		Help: "Notifications written for users, by type.",
	}, []string{"type"})
)

// ObserveHTTPRequest records one request into the duration histogram.
func ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(elapsed.Seconds())
}
