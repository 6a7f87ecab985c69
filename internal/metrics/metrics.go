package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Suggestions
	Suggestions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmate_suggestions_total",
			Help: "Resolved meal suggestions by outcome",
		},
		[]string{"outcome"}, // outcome: success|unavailable|validation|request_format|upstream|unexpected
	)

	// Upstream generation calls
	GenerationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealmate_generation_duration_seconds",
			Help:    "Duration of calls to the generation service",
			Buckets: prometheus.ExponentialBuckets(0.25, 2, 8), // 0.25s..32s
		},
		[]string{"model", "result"},
	)

	// HTTP
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmate_http_requests_total",
			Help: "HTTP requests by route, method and status code",
		},
		[]string{"route", "method", "code"},
	)
	HTTPDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mealmate_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)

	// Errors
	Errors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mealmate_errors_total",
			Help: "Errors encountered in supporting components",
		},
		[]string{"component", "type"}, // component: journal|archive
	)
)

func init() {
	prometheus.MustRegister(
		Suggestions,
		GenerationDurationSeconds,
		HTTPRequests,
		HTTPDurationSeconds,
		Errors,
	)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Suggestions
func IncSuggestion(outcome string) {
	Suggestions.WithLabelValues(outcome).Inc()
}

// Generation
func ObserveGeneration(model, result string, d time.Duration) {
	GenerationDurationSeconds.WithLabelValues(model, result).Observe(d.Seconds())
}

// HTTP
func ObserveHTTPRequest(route, method, code string, d time.Duration) {
	HTTPRequests.WithLabelValues(route, method, code).Inc()
	HTTPDurationSeconds.WithLabelValues(route, method).Observe(d.Seconds())
}

// Errors
func IncError(component, typ string) {
	Errors.WithLabelValues(component, typ).Inc()
}
