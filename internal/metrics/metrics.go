package metrics

import (
	"sync" // Registration guard

	"github.com/prometheus/client_golang/prometheus" // Prometheus client
)

var (
	// Latency of every HTTP request by route template
	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})

	// Total HTTP requests by route template and status code
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "route", "status"})

	UsersRegistered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "users_registered_total",
		Help: "Total number of successful registrations",
	})

	// Login outcomes: success, invalid, throttled
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "login_attempts_total",
		Help: "Login attempts by outcome",
	}, []string{"result"})

	PaymentsCreated = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_created_total",
		Help: "Payments created by initial status",
	}, []string{"status"})
)

var once sync.Once

// Init registers the collectors with the default registry
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			HTTPRequestDuration,
			HTTPRequests,
			UsersRegistered,
			LoginAttempts,
			PaymentsCreated,
		)
	})
}
