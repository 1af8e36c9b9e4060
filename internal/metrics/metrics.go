package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	ResetEmailsSent = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "reset_emails_sent_total", Help: "Password reset emails delivered"},
	)
)

func MustRegister() {
	prometheus.MustRegister(RequestsTotal, ReqDuration, ResetEmailsSent)
}
