package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// AddSectionsIndexed increments the indexed-sections counter for a section type.
// Example: metrics.AddSectionsIndexed("metrics", 4)
func (m *Metrics) AddSectionsIndexed(sectionType string, n int) {
	m.sectionsIndexed.WithLabelValues(sectionType).Add(float64(n))
}

// IncrementEmbeddingRequests increments the embedding request counter with a
// status label ("success" or "error").
func (m *Metrics) IncrementEmbeddingRequests(status string) {
	m.embeddingRequests.WithLabelValues(status).Inc()
}

// AddEmbeddingCost accumulates provider cost in USD.
func (m *Metrics) AddEmbeddingCost(usd float64) {
	if usd > 0 {
		m.embeddingCostUSD.Add(usd)
	}
}

// RecordRetrievalDuration records the duration (in seconds) of a retrieval
// operation. Example: defer metrics.RecordRetrievalDuration(time.Now(), "get_suggestions")
func (m *Metrics) RecordRetrievalDuration(start time.Time, operation string) {
	m.retrievalDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// CreateCounter creates a new CounterVec metric and registers it.
func (m *Metrics) CreateCounter(name, help string, labels []string) *prometheus.CounterVec {
	counter := createCounterVec(name, help, labels)
	m.Registry.MustRegister(counter)
	return counter
}

// CreateHistogram creates a new HistogramVec metric and registers it.
func (m *Metrics) CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	hist := createHistogramVec(name, help, labels, buckets)
	m.Registry.MustRegister(hist)
	return hist
}

// CreateGauge creates a new GaugeVec metric and registers it.
func (m *Metrics) CreateGauge(name, help string, labels []string) *prometheus.GaugeVec {
	gauge := createGaugeVec(name, help, labels)
	m.Registry.MustRegister(gauge)
	return gauge
}

// createCounterVec defines a new CounterVec with standard options.
func createCounterVec(name, help string, labels []string) *prometheus.CounterVec {
	return prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}

// createHistogramVec defines a new HistogramVec with configurable buckets.
func createHistogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	return prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    name,
			Help:    help,
			Buckets: buckets,
		},
		labels,
	)
}

// createGaugeVec defines a new GaugeVec for resource monitoring.
func createGaugeVec(name, help string, labels []string) *prometheus.GaugeVec {
	return prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: name,
			Help: help,
		},
		labels,
	)
}
