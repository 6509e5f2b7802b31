// Package vectorstore manages the engine's Qdrant collection: vectors plus
// the section payload, with filtered similarity search and the hybrid
// ranking used for content suggestions.
//
// # Overview
//
// A Client moves through three states:
//
//	Disconnected → Connected → CollectionReady
//
// NewClient establishes connectivity and verifies it with a health check
// (Connected). Initialize creates the collection if absent - with the
// configured dimension and cosine distance - and builds payload indexes on
// entity, section_type and document_date so filtered search stays fast
// (CollectionReady). Only a CollectionReady client accepts reads or writes.
//
// # Operations
//
//   - Upsert / BatchUpsert: idempotent writes; batch writes are chunked and
//     report per-id failures instead of assuming all-or-nothing.
//   - Search: similarity search pruned by a score threshold at the store,
//     before any client-side handling.
//   - HybridSearch: oversampled filtered similarity search re-ranked with
//     additive keyword, performance and recency boosts. Semantic similarity
//     dominates by construction: the three boosts add at most 0.45 combined
//     against a similarity range of 1.0, so no secondary signal can rescue
//     a semantically irrelevant candidate.
//
// # Errors
//
// Sentinel errors separate retryable store failures (ErrUnavailable) from
// validation failures that must never be retried (ErrDimensionMismatch,
// empty input). Use IsRetryable to route retry policy.
package vectorstore
