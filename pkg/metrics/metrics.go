package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "pakdocs"

var (
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "http_requests_total", Help: "Total number of HTTP requests."},
		[]string{"method", "route", "status"},
	)
	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: namespace, Name: "http_request_duration_seconds", Help: "Duration of HTTP requests.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route", "status"},
	)

	// Generations counts draft generation attempts by outcome (success|failure).
	Generations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "generations_total", Help: "Draft generation attempts by outcome."},
		[]string{"outcome"},
	)
	GenerationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Latency of upstream draft generation calls.",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 20, 40, 80, 120},
		},
		[]string{"outcome"},
	)

	DocumentsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "documents_created_total", Help: "Number of saved documents."},
	)
	PDFExports = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "pdf_exports_total", Help: "PDF exports by archive result (archived|skipped|failed)."},
		[]string{"archive"},
	)
)

// ObserveHTTPRequest records one served request.
func ObserveHTTPRequest(method, route, status string, d time.Duration) {
	HTTPRequests.WithLabelValues(method, route, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, route, status).Observe(d.Seconds())
}

// ObserveGeneration records a generation attempt.
func ObserveGeneration(outcome string, d time.Duration) {
	Generations.WithLabelValues(outcome).Inc()
	GenerationDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPRequestDuration)
	reg.MustRegister(Generations)
	reg.MustRegister(GenerationDuration)
	reg.MustRegister(DocumentsCreated)
	reg.MustRegister(PDFExports)
}
