package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce           sync.Once
	httpRequestsTotal      *prometheus.CounterVec
	httpLatencySeconds     *prometheus.HistogramVec
	evaluationSavesTotal   *prometheus.CounterVec
	progressLookupsTotal   *prometheus.CounterVec
	progressLookupLatency  prometheus.Histogram
	chatMessagesTotal      prometheus.Counter
)

// RegisterMetrics initialises the Prometheus collectors used across the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		httpLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		evaluationSavesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "evaluation_saves_total",
			Help: "Total number of evaluation save attempts by outcome.",
		}, []string{"outcome"})

		progressLookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "progress_lookups_total",
			Help: "Total number of project progress lookups by source.",
		}, []string{"source"})

		progressLookupLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "progress_lookup_latency_seconds",
			Help:    "Latency distribution for project progress lookups.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		})

		chatMessagesTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Name: "chat_messages_total",
			Help: "Total number of chat messages accepted.",
		})

		prometheus.MustRegister(
			httpRequestsTotal,
			httpLatencySeconds,
			evaluationSavesTotal,
			progressLookupsTotal,
			progressLookupLatency,
			chatMessagesTotal,
		)
	})
}

// HTTPRequests exposes the counter for API requests.
func HTTPRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return httpRequestsTotal
}

// HTTPLatency exposes the latency histogram for API requests.
func HTTPLatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return httpLatencySeconds
}

// EvaluationSaves exposes the counter for evaluation save attempts.
func EvaluationSaves() *prometheus.CounterVec {
	RegisterMetrics()
	return evaluationSavesTotal
}

// ProgressLookups exposes the counter for progress lookups.
func ProgressLookups() *prometheus.CounterVec {
	RegisterMetrics()
	return progressLookupsTotal
}

// ProgressLookupLatency exposes the latency histogram for progress lookups.
func ProgressLookupLatency() prometheus.Histogram {
	RegisterMetrics()
	return progressLookupLatency
}

// ChatMessages exposes the counter for accepted chat messages.
func ChatMessages() prometheus.Counter {
	RegisterMetrics()
	return chatMessagesTotal
}
