package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// WorkerMetrics covers the processing side: document throughput plus
// model gateway traffic. Its RecordModelCall/RecordCacheHit methods
// satisfy the gateway's metrics hook.
type WorkerMetrics struct {
	registry *prometheus.Registry

	processTotal    *prometheus.CounterVec
	processDuration *prometheus.HistogramVec
	processInFlight prometheus.Gauge
	queueLag        prometheus.Histogram

	modelCallsTotal     *prometheus.CounterVec
	modelTokensTotal    *prometheus.CounterVec
	modelCacheHitsTotal *prometheus.CounterVec
}

func NewWorkerMetrics(service string) *WorkerMetrics {
	registry := prometheus.NewRegistry()
	serviceLabel := prometheus.Labels{"service": service}

	processTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "docintel",
			Subsystem:   "worker",
			Name:        "document_process_total",
			Help:        "Total processed documents by status.",
			ConstLabels: serviceLabel,
		},
		[]string{"status"},
	)
	processDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace:   "docintel",
			Subsystem:   "worker",
			Name:        "document_process_duration_seconds",
			Help:        "Document processing duration in seconds by status.",
			Buckets:     []float64{0.5, 1, 2, 5, 10, 30, 60, 120, 300},
			ConstLabels: serviceLabel,
		},
		[]string{"status"},
	)
	processInFlight := prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace:   "docintel",
			Subsystem:   "worker",
			Name:        "document_process_in_flight",
			Help:        "Number of in-flight document processing tasks.",
			ConstLabels: serviceLabel,
		},
	)
	queueLag := prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace:   "docintel",
			Subsystem:   "worker",
			Name:        "queue_lag_seconds",
			Help:        "Delay between document upload and processing start.",
			Buckets:     []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120, 300, 600},
			ConstLabels: serviceLabel,
		},
	)
	modelCallsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "docintel",
			Subsystem:   "model",
			Name:        "calls_total",
			Help:        "Total model provider calls by operation and outcome.",
			ConstLabels: serviceLabel,
		},
		[]string{"operation", "outcome"},
	)
	modelTokensTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "docintel",
			Subsystem:   "model",
			Name:        "tokens_total",
			Help:        "Total tokens reported by the model provider.",
			ConstLabels: serviceLabel,
		},
		[]string{"operation"},
	)
	modelCacheHitsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace:   "docintel",
			Subsystem:   "model",
			Name:        "cache_hits_total",
			Help:        "Completions served from the response cache.",
			ConstLabels: serviceLabel,
		},
		[]string{"operation"},
	)

	registry.MustRegister(
		processTotal,
		processDuration,
		processInFlight,
		queueLag,
		modelCallsTotal,
		modelTokensTotal,
		modelCacheHitsTotal,
	)

	return &WorkerMetrics{
		registry:            registry,
		processTotal:        processTotal,
		processDuration:     processDuration,
		processInFlight:     processInFlight,
		queueLag:            queueLag,
		modelCallsTotal:     modelCallsTotal,
		modelTokensTotal:    modelTokensTotal,
		modelCacheHitsTotal: modelCacheHitsTotal,
	}
}

func (m *WorkerMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *WorkerMetrics) StartDocument() {
	m.processInFlight.Inc()
}

func (m *WorkerMetrics) FinishDocument(duration time.Duration, err error) {
	m.processInFlight.Dec()

	status := "success"
	if err != nil {
		status = "error"
	}

	m.processTotal.WithLabelValues(status).Inc()
	m.processDuration.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *WorkerMetrics) ObserveQueueLag(lag time.Duration) {
	if lag < 0 {
		return
	}
	m.queueLag.Observe(lag.Seconds())
}

func (m *WorkerMetrics) RecordModelCall(operation, outcome string, tokens int) {
	if outcome == "" {
		outcome = "unknown"
	}
	m.modelCallsTotal.WithLabelValues(operation, outcome).Inc()
	if tokens > 0 {
		m.modelTokensTotal.WithLabelValues(operation).Add(float64(tokens))
	}
}

func (m *WorkerMetrics) RecordCacheHit(operation string) {
	m.modelCacheHitsTotal.WithLabelValues(operation).Inc()
}
