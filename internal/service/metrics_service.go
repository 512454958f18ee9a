package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the portal.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	submittedTotal  *prometheus.CounterVec
	respondedTotal  prometheus.Counter
	storeDuration   *prometheus.HistogramVec
}

// NewMetricsService registers the core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	submittedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "complaints_submitted_total",
		Help: "Total complaints submitted, by complaint type",
	}, []string{"type"})

	respondedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "complaints_responded_total",
		Help: "Total faculty responses recorded",
	})

	storeDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "store_operation_duration_seconds",
		Help:    "Duration of storage operations in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"driver", "operation"})

	registry.MustRegister(requestDuration, requestTotal, submittedTotal, respondedTotal, storeDuration)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		submittedTotal:  submittedTotal,
		respondedTotal:  respondedTotal,
		storeDuration:   storeDuration,
	}
}

// Handler serves the Prometheus exposition endpoint.
func (m *MetricsService) Handler() http.Handler {
	return m.handler
}

// ObserveHTTPRequest records a completed HTTP request.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	m.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(labels...).Inc()
}

// ComplaintSubmitted counts a new complaint.
func (m *MetricsService) ComplaintSubmitted(complaintType string) {
	m.submittedTotal.WithLabelValues(complaintType).Inc()
}

// ComplaintResponded counts a recorded faculty response.
func (m *MetricsService) ComplaintResponded() {
	m.respondedTotal.Inc()
}

// ObserveStoreOperation records the latency of one storage call.
func (m *MetricsService) ObserveStoreOperation(driver, operation string, duration time.Duration) {
	m.storeDuration.WithLabelValues(driver, operation).Observe(duration.Seconds())
}
