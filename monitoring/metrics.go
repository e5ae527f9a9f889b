package monitoring

import (
	"fmt"
	"net/http"
	"time"

	"tinydb/storage"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Metrics struct {
	registry        *prometheus.Registry
	requestDuration *prometheus.HistogramVec
	requestCount    *prometheus.CounterVec
	errorCount      *prometheus.CounterVec
	datasetKeys     prometheus.Gauge
	readLatency     prometheus.Histogram
	storageOps      *prometheus.CounterVec
}

// NewMetrics builds a metric set on its own registry, so independent
// instances do not collide on registration.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "path", "status"}),

		requestCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),

		errorCount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_errors_total",
			Help: "Total number of HTTP errors",
		}, []string{"method", "path", "error_type"}),

		datasetKeys: factory.NewGauge(prometheus.GaugeOpts{
			Name: "dataset_keys_total",
			Help: "Number of top-level keys in the stored dataset",
		}),

		readLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "storage_read_duration_seconds",
			Help:    "Duration of full dataset reads from the backend",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),

		storageOps: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "storage_operations_total",
			Help: "Total number of storage reads and writes by outcome",
		}, []string{"operation", "status"}),
	}
}

func (m *Metrics) ObserveRequest(method, path string, status int, duration time.Duration) {
	m.requestDuration.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Observe(duration.Seconds())
	m.requestCount.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
}

func (m *Metrics) ObserveError(method, path, errorType string) {
	m.errorCount.WithLabelValues(method, path, errorType).Inc()
}

func (m *Metrics) ObserveStorageOp(operation string, err error, duration time.Duration) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.storageOps.WithLabelValues(operation, status).Inc()

	if operation == "read" {
		m.readLatency.Observe(duration.Seconds())
	}
}

// UpdateStorageMetrics reads the current dataset and refreshes the
// dataset key gauge. Latency and operation counts are recorded by the
// handle itself when it is an InstrumentedStorage.
func (m *Metrics) UpdateStorageMetrics(store storage.Storage) {
	data, err := store.Read()
	if err == nil {
		m.datasetKeys.Set(float64(len(data)))
	}
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
