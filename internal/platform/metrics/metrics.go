package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	UsersRegistered prometheus.Counter
	Logins          prometheus.Counter
	ListsCreated    prometheus.Counter
	ItemsAdded      prometheus.Counter
	ItemsCompleted  prometheus.Counter

	RequestDuration *prometheus.HistogramVec
}

// New creates and registers all Prometheus metrics on the default registry.
func New() *Metrics {
	return &Metrics{
		UsersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listly_users_registered_total",
			Help: "Total number of users registered",
		}),
		Logins: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listly_logins_total",
			Help: "Total number of successful logins",
		}),
		ListsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listly_lists_created_total",
			Help: "Total number of lists created",
		}),
		ItemsAdded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listly_items_added_total",
			Help: "Total number of to-do items added",
		}),
		ItemsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "listly_items_completed_total",
			Help: "Total number of to-do items completed",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "listly_http_request_duration_ms",
			Help:    "Latency of HTTP requests in milliseconds",
			Buckets: []float64{0.5, 1, 2.5, 5, 10, 25, 50, 100, 250, 500, 1000},
		}, []string{"method"}),
	}
}

// ObserveRequest records one request's latency.
func (m *Metrics) ObserveRequest(method string, d time.Duration) {
	m.RequestDuration.WithLabelValues(method).Observe(float64(d.Microseconds()) / 1000.0)
}
