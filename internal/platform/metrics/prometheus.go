package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds custom Prometheus metrics on a private registry.
type Manager struct {
	Registry                *prometheus.Registry
	RegistrationsTotal      *prometheus.CounterVec
	EmailVerificationsTotal prometheus.Counter
	EstimatesTotal          prometheus.Counter
	AdminReviewsTotal       *prometheus.CounterVec
	HTTPErrorsTotal         *prometheus.CounterVec
	HTTPLatency             *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	registrationsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "registrations_total",
		Help:      "Total number of account registrations by role.",
	}, []string{"role"})
	emailVerificationsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "email_verifications_total",
		Help:      "Total number of successful email verifications.",
	})
	estimatesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "estimates_total",
		Help:      "Total number of BOQ estimates computed.",
	})
	adminReviewsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "admin_reviews_total",
		Help:      "Total number of admin review actions by action.",
	}, []string{"action"})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by status code.",
	}, []string{"code"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route and method.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	registry.MustRegister(
		registrationsTotal,
		emailVerificationsTotal,
		estimatesTotal,
		adminReviewsTotal,
		httpErrorsTotal,
		httpLatency,
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:                registry,
		RegistrationsTotal:      registrationsTotal,
		EmailVerificationsTotal: emailVerificationsTotal,
		EstimatesTotal:          estimatesTotal,
		AdminReviewsTotal:       adminReviewsTotal,
		HTTPErrorsTotal:         httpErrorsTotal,
		HTTPLatency:             httpLatency,
	}
}

// StartServer exposes /metrics on its own port. Blocks; run in a goroutine.
func StartServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics server port not configured, server will not start.")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
