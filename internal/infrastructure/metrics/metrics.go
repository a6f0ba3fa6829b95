package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommend-API Metrics
var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Upstream completion duration
	CompletionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "completion_duration_seconds",
			Help:      "Upstream chat completion duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"mode"},
	)

	// Upstream completion failures
	CompletionErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "completion_errors_total",
			Help:      "Total failed upstream chat completions",
		},
		[]string{"mode"},
	)

	// Interpreter rule selections
	InterpreterRulesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "interpreter_rules_total",
			Help:      "Recommendation selections by interpreter rule",
		},
		[]string{"rule"},
	)

	// Widget feed requests
	WidgetFeedRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "widget_feed_requests_total",
			Help:      "Total widget feed requests",
		},
		[]string{"type", "style", "status"},
	)

	// Embed script requests
	EmbedScriptRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "shoprec",
			Subsystem: "recommend_api",
			Name:      "embed_script_requests_total",
			Help:      "Total embed script downloads",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordCompletion records an upstream completion attempt
func RecordCompletion(mode string, durationSec float64, err error) {
	CompletionDuration.WithLabelValues(mode).Observe(durationSec)
	if err != nil {
		CompletionErrorsTotal.WithLabelValues(mode).Inc()
	}
}

// RecordInterpreterRule records which rule produced a recommendation
func RecordInterpreterRule(rule string) {
	InterpreterRulesTotal.WithLabelValues(rule).Inc()
}

// RecordWidgetFeedRequest records one widget feed query
func RecordWidgetFeedRequest(feedType, style, status string) {
	WidgetFeedRequestsTotal.WithLabelValues(feedType, style, status).Inc()
}
