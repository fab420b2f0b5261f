package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements domain.repository.Metrics using Prometheus.
type Recorder struct {
	messagesSent    *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	recommendations *prometheus.CounterVec
	latency         *prometheus.HistogramVec
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	return &Recorder{
		messagesSent: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidsnapper_messages_sent_total",
				Help: "Total number of messages sent to backend",
			},
			[]string{"backend", "table"},
		),
		errorsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidsnapper_errors_total",
				Help: "Total number of errors encountered",
			},
			[]string{"type"},
		),
		recommendations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bidsnapper_recommendations_total",
				Help: "Recommendations served, by strain and validity",
			},
			[]string{"strain", "valid"},
		),
		latency: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "bidsnapper_operation_duration_seconds",
				Help:    "Duration of operations in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
	}
}

// RecordMessageSent records a message sent to a backend.
func (r *Recorder) RecordMessageSent(backend, table string) {
	r.messagesSent.WithLabelValues(backend, table).Inc()
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRecommendation records a served recommendation outcome.
func (r *Recorder) RecordRecommendation(strain string, valid bool) {
	v := "false"
	if valid {
		v = "true"
	}
	r.recommendations.WithLabelValues(strain, v).Inc()
}

// RecordLatency records operation latency in seconds.
func (r *Recorder) RecordLatency(op string, seconds float64) {
	r.latency.WithLabelValues(op).Observe(seconds)
}
