// Package metrics exposes the engine's Prometheus metrics.
//
// # Overview
//
// Each service gets an isolated registry and an HTTP server serving
// /metrics. The engine's built-in collectors cover the indexing and
// retrieval paths:
//
//   - sections_indexed_total{section_type}
//   - embedding_requests_total{status}
//   - embedding_cost_usd_total
//   - retrieval_duration_seconds{operation}
//
// plus the standard Go, process and build-info collectors when
// EnableDefaultCollectors is set. Additional metrics can be registered
// through the CreateCounter/CreateHistogram/CreateGauge factories.
//
// # Usage
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "content-engine"})
//	m.AddSectionsIndexed("metrics", 4)
//	defer m.RecordRetrievalDuration(time.Now(), "get_suggestions")
//
// In an Fx application include FXModule and provide a Config; the /metrics
// server starts and stops with the application lifecycle.
package metrics
