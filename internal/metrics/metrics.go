// Package metrics provides the centralized Prometheus metrics registry for
// the prediction platform.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	PredictionsGeneratedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corner_edge",
		Name:      "predictions_generated_total",
		Help:      "Total number of predictions generated by outcome",
	}, []string{"outcome"}) // full, insufficient_data

	BacktestDatesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corner_edge",
		Name:      "backtest_dates_total",
		Help:      "Total number of backtest dates by status",
	}, []string{"status"}) // success, failure, skipped

	BacktestPredictionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "corner_edge",
		Name:      "backtest_predictions_total",
		Help:      "Total number of predictions stored during backtests",
	})

	StatsBackfillTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corner_edge",
		Name:      "stats_backfill_total",
		Help:      "Total number of statistics backfill attempts by status",
	}, []string{"status"}) // success, failure, pending

	APIRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "corner_edge",
		Name:      "api_requests_total",
		Help:      "Total number of upstream sports API requests by endpoint and status",
	}, []string{"endpoint", "status"})
)

// Gauge metrics
var (
	BacktestDatesRemaining = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "corner_edge",
		Name:      "backtest_dates_remaining",
		Help:      "Number of match dates still unprocessed in the current backtest",
	})

	MatchesMissingStats = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "corner_edge",
		Name:      "matches_missing_stats",
		Help:      "Number of finished matches still awaiting statistics",
	})
)

// Histogram metrics
var (
	PredictionDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "corner_edge",
		Name:      "prediction_duration_seconds",
		Help:      "Duration of single prediction generation in seconds",
		Buckets:   prometheus.DefBuckets,
	})

	BacktestDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "corner_edge",
		Name:      "backtest_duration_seconds",
		Help:      "Duration of full backtest runs in seconds",
		Buckets:   []float64{1, 5, 10, 30, 60, 300, 600, 1800},
	})

	APIRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "corner_edge",
		Name:      "api_request_duration_seconds",
		Help:      "Duration of upstream sports API requests in seconds",
		Buckets:   prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(PredictionsGeneratedTotal)
		registry.MustRegister(BacktestDatesTotal)
		registry.MustRegister(BacktestPredictionsTotal)
		registry.MustRegister(StatsBackfillTotal)
		registry.MustRegister(APIRequestsTotal)

		registry.MustRegister(BacktestDatesRemaining)
		registry.MustRegister(MatchesMissingStats)

		registry.MustRegister(PredictionDuration)
		registry.MustRegister(BacktestDuration)
		registry.MustRegister(APIRequestDuration)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordPrediction records a prediction generation event.
func RecordPrediction(outcome string, durationSeconds float64) {
	PredictionsGeneratedTotal.WithLabelValues(outcome).Inc()
	PredictionDuration.Observe(durationSeconds)
}

// RecordBacktestDate records the outcome of one processed match date.
// status should be one of: "success", "failure", "skipped"
func RecordBacktestDate(status string) {
	BacktestDatesTotal.WithLabelValues(status).Inc()
}

// RecordBacktestStored records stored backtest predictions.
func RecordBacktestStored(count int) {
	BacktestPredictionsTotal.Add(float64(count))
}

// RecordAPIRequest records an upstream API request.
func RecordAPIRequest(endpoint, status string, durationSeconds float64) {
	APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	APIRequestDuration.WithLabelValues(endpoint).Observe(durationSeconds)
}

// RecordBackfill records a statistics backfill attempt.
func RecordBackfill(status string) {
	StatsBackfillTotal.WithLabelValues(status).Inc()
}
