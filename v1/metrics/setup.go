package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics encapsulates the Prometheus registry and the HTTP server exposing
// the /metrics endpoint for scraping.
type Metrics struct {
	// Server is the HTTP server exposing /metrics.
	Server *http.Server

	// Registry is the Prometheus registry where all metrics are registered.
	// Each service keeps its own isolated registry to prevent name collisions.
	Registry *prometheus.Registry

	// Core engine metrics
	sectionsIndexed   *prometheus.CounterVec
	embeddingRequests *prometheus.CounterVec
	embeddingCostUSD  prometheus.Counter
	retrievalDuration *prometheus.HistogramVec
}

// NewMetrics initializes a Metrics instance with a dedicated registry,
// the engine's built-in collectors, and an HTTP server on cfg.Address.
//
// All metrics are wrapped with a constant service label so dashboards can
// aggregate across deployments:
//
//	cfg := metrics.Config{Address: ":9090", ServiceName: "content-engine", EnableDefaultCollectors: true}
//	m := metrics.NewMetrics(cfg)
//
// Access metrics at http://localhost:9090/metrics.
func NewMetrics(cfg Config) *Metrics {
	// An isolated registry avoids collisions when multiple services run in
	// the same process.
	registry := prometheus.NewRegistry()

	wrappedRegistry := prometheus.WrapRegistererWith(
		prometheus.Labels{"service": cfg.ServiceName},
		registry,
	)

	m := &Metrics{
		Registry: registry,
	}

	m.sectionsIndexed = createCounterVec("sections_indexed_total", "Total number of document sections indexed into the vector store", []string{"section_type"})
	m.embeddingRequests = createCounterVec("embedding_requests_total", "Total number of embedding provider requests", []string{"status"})
	m.embeddingCostUSD = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "embedding_cost_usd_total",
		Help: "Accumulated embedding provider cost in USD",
	})
	m.retrievalDuration = createHistogramVec("retrieval_duration_seconds", "Duration of suggestion retrieval operations in seconds", []string{"operation"}, prometheus.DefBuckets)

	wrappedRegistry.MustRegister(
		m.sectionsIndexed,
		m.embeddingRequests,
		m.embeddingCostUSD,
		m.retrievalDuration,
	)

	// GoCollector, ProcessCollector and BuildInfoCollector provide the
	// standard runtime metrics for Go processes.
	if cfg.EnableDefaultCollectors {
		wrappedRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewBuildInfoCollector(),
		)
	}

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	m.Server = &http.Server{
		Addr:    cfg.Address,
		Handler: handler,
	}

	return m
}
