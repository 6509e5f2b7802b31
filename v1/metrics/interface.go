package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector abstracts the metric operations the engine records.
// It is implemented by the concrete *Metrics type; packages that only
// record metrics should depend on this interface.
type Collector interface {
	// Engine metrics

	// AddSectionsIndexed increments the indexed-sections counter for a section type.
	AddSectionsIndexed(sectionType string, n int)

	// IncrementEmbeddingRequests increments the embedding request counter
	// with a status label.
	IncrementEmbeddingRequests(status string)

	// AddEmbeddingCost accumulates provider cost in USD.
	AddEmbeddingCost(usd float64)

	// RecordRetrievalDuration records the duration of a retrieval operation.
	RecordRetrievalDuration(start time.Time, operation string)

	// Dynamic metric factories

	// CreateCounter creates a new CounterVec metric and registers it.
	CreateCounter(name, help string, labels []string) *prometheus.CounterVec

	// CreateHistogram creates a new HistogramVec metric and registers it.
	CreateHistogram(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec

	// CreateGauge creates a new GaugeVec metric and registers it.
	CreateGauge(name, help string, labels []string) *prometheus.GaugeVec
}

var _ Collector = (*Metrics)(nil)
