package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	AnalysisDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deepmindcheck_web_analysis_duration_seconds",
			Help:    "End-to-end analysis submission duration in seconds",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
	)

	AnalysisTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_analysis_total",
			Help: "Total analysis submissions reaching the backend",
		},
		[]string{"status"},
	)

	PredictionTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_prediction_total",
			Help: "Predictions returned, by class",
		},
		[]string{"prediction"},
	)

	ConfidenceScore = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "deepmindcheck_web_confidence_score",
			Help:    "Confidence scores of returned analyses",
			Buckets: []float64{0.1, 0.2, 0.3, 0.4, 0.5, 0.6, 0.7, 0.8, 0.9, 1.0},
		},
	)

	FeedbackTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_feedback_total",
			Help: "Star ratings submitted",
		},
		[]string{"rating", "status"},
	)

	BusyRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_busy_rejections_total",
			Help: "Submissions rejected because one was already in flight",
		},
	)

	ValidationRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_validation_rejections_total",
			Help: "Submissions rejected locally before any network call",
		},
		[]string{"reason"},
	)

	BackendErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_backend_errors_total",
			Help: "Failed calls to the analysis service",
		},
		[]string{"op", "kind"},
	)

	CacheHits = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_cache_hits_total",
			Help: "Total cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_cache_misses_total",
			Help: "Total cache misses",
		},
		[]string{"cache_type"},
	)

	CounterConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "deepmindcheck_web_counter_connections",
			Help: "Open live character counter connections",
		},
	)

	SessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "deepmindcheck_web_sessions_active",
			Help: "Sessions currently held in memory",
		},
	)

	BreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "deepmindcheck_web_breaker_state",
			Help: "Circuit breaker state (0 closed, 1 half-open, 2 open)",
		},
		[]string{"name"},
	)

	RateLimitRejections = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "deepmindcheck_web_ratelimit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func Init() {
	prometheus.MustRegister(AnalysisDuration)
	prometheus.MustRegister(AnalysisTotal)
	prometheus.MustRegister(PredictionTotal)
	prometheus.MustRegister(ConfidenceScore)
	prometheus.MustRegister(FeedbackTotal)
	prometheus.MustRegister(BusyRejections)
	prometheus.MustRegister(ValidationRejections)
	prometheus.MustRegister(BackendErrors)
	prometheus.MustRegister(CacheHits)
	prometheus.MustRegister(CacheMisses)
	prometheus.MustRegister(CounterConnections)
	prometheus.MustRegister(SessionsActive)
	prometheus.MustRegister(BreakerState)
	prometheus.MustRegister(RateLimitRejections)
}

func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
