package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce         sync.Once
	apiRequestsTotal     *prometheus.CounterVec
	apiLatencySeconds    *prometheus.HistogramVec
	apiErrorsTotal       *prometheus.CounterVec
	predictionsTotal     *prometheus.CounterVec
	predictionDuration   prometheus.Histogram
	predictionScore      prometheus.Histogram
	predictionConfidence *prometheus.CounterVec
	predictionEvents     *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0, 5.0, 10.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by API endpoints.",
		}, []string{"method", "route", "status"})

		predictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Prediction attempts partitioned by result.",
		}, []string{"result"})

		predictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_duration_seconds",
			Help:    "End-to-end duration of prediction generation.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30},
		})

		predictionScore = prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_overall_probability",
			Help:    "Distribution of stored overall probabilities.",
			Buckets: prometheus.LinearBuckets(10, 10, 10),
		})

		predictionConfidence = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prediction_confidence_total",
			Help: "Stored predictions partitioned by confidence level.",
		}, []string{"level"})

		predictionEvents = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "prediction_events_total",
			Help: "Prediction domain events partitioned by publish result.",
		}, []string{"result"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			predictionsTotal,
			predictionDuration,
			predictionScore,
			predictionConfidence,
			predictionEvents,
		)
	})
}

// APIRequests exposes the counter for API requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for API requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for API error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// Predictions exposes the prediction attempt counter.
func Predictions() *prometheus.CounterVec {
	RegisterMetrics()
	return predictionsTotal
}

// PredictionDuration exposes the prediction latency histogram.
func PredictionDuration() prometheus.Histogram {
	RegisterMetrics()
	return predictionDuration
}

// PredictionScore exposes the overall probability histogram.
func PredictionScore() prometheus.Histogram {
	RegisterMetrics()
	return predictionScore
}

// PredictionConfidence exposes the confidence bucket counter.
func PredictionConfidence() *prometheus.CounterVec {
	RegisterMetrics()
	return predictionConfidence
}

// PredictionEvents exposes the event publish counter.
func PredictionEvents() *prometheus.CounterVec {
	RegisterMetrics()
	return predictionEvents
}
