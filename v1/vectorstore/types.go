package vectorstore

import (
	"time"

	"github.com/partnerforge/ragengine/v1/section"
)

// Point is one stored vector with its section payload.
type Point struct {
	// ID is the unique identifier; upserting the same ID overwrites.
	ID string `json:"id"`

	// Vector is the embedding. Its length must equal the collection dimension.
	Vector []float32 `json:"vector"`

	// Payload is the stored section in the persisted layout
	// (see section.ToPayload).
	Payload map[string]any `json:"payload"`
}

// SearchParams configures a plain similarity search.
type SearchParams struct {
	// Vector is the query embedding.
	Vector []float32 `json:"vector"`

	// Limit is the maximum number of results.
	Limit int `json:"limit"`

	// Filter is optional metadata filtering applied at the store.
	Filter *FilterSet `json:"filter,omitempty"`

	// ScoreThreshold prunes results below this similarity at the store,
	// before any client-side handling. Zero means no threshold.
	ScoreThreshold float64 `json:"scoreThreshold,omitempty"`
}

// SearchResult is a single similarity match.
type SearchResult struct {
	// ID of the matched point.
	ID string `json:"id"`

	// Score is the store's cosine similarity (higher is more similar).
	Score float64 `json:"score"`

	// Payload is the stored section payload.
	Payload map[string]any `json:"payload"`
}

// Section decodes the result payload into a section.
func (r SearchResult) Section() (section.Section, error) {
	return section.FromPayload(r.Payload)
}

// HybridParams configures a hybrid search: filtered similarity search
// re-ranked with keyword, performance and recency boosts.
type HybridParams struct {
	// Vector is the query embedding.
	Vector []float32 `json:"vector"`

	// Keywords boost candidates whose content contains them. Matching is
	// lowercase on both sides.
	Keywords []string `json:"keywords,omitempty"`

	// SectionTypes is a hard store-level filter: candidates of other types
	// never appear, they are not merely deprioritized.
	SectionTypes []section.Type `json:"sectionTypes,omitempty"`

	// MinPerformanceScore is a hard store-level filter on the stored
	// performance score.
	MinPerformanceScore float64 `json:"minPerformanceScore,omitempty"`

	// BoostRecency enables the recency boost for dated candidates.
	BoostRecency bool `json:"boostRecency,omitempty"`

	// Limit is the maximum number of results after re-ranking.
	Limit int `json:"limit"`
}

// HybridResult is a hybrid search match with its score breakdown.
type HybridResult struct {
	SearchResult

	// SemanticScore is the store similarity in [0,1].
	SemanticScore float64 `json:"semanticScore"`

	// KeywordBoost in [0, 0.2].
	KeywordBoost float64 `json:"keywordBoost"`

	// PerformanceBoost in [0, 0.15].
	PerformanceBoost float64 `json:"performanceBoost"`

	// RecencyBoost in [0, 0.1].
	RecencyBoost float64 `json:"recencyBoost"`

	// FinalScore is the sum of the four terms; results are ordered by it.
	FinalScore float64 `json:"finalScore"`
}

// IDError attributes a batch failure to a single point.
type IDError struct {
	ID  string `json:"id"`
	Err error  `json:"-"`
}

// BatchResult reports the outcome of a batch upsert. A partially failed
// provider-side write surfaces here instead of failing the whole batch.
type BatchResult struct {
	// Succeeded lists the ids written.
	Succeeded []string `json:"succeeded"`

	// Failed lists the ids that could not be written, with causes.
	Failed []IDError `json:"failed"`
}

// CollectionInfo contains metadata about the collection.
type CollectionInfo struct {
	// Name of the collection.
	Name string `json:"name"`

	// Status, e.g. "Green".
	Status string `json:"status"`

	// Dimension of the stored vectors.
	Dimension int `json:"dimension"`

	// Distance metric, e.g. "Cosine".
	Distance string `json:"distance"`

	// Points is the number of stored points.
	Points uint64 `json:"points"`
}

// hybrid ranking weights; the additive, capped design keeps semantic
// similarity dominant (boosts sum to at most 0.45 against a 1.0 range).
const (
	oversampleFactor       = 2
	hybridScoreThreshold   = 0.6
	keywordBoostWeight     = 0.2
	performanceBoostWeight = 0.15
	recencyBoostWeight     = 0.1
	recencyHorizon         = 365 * 24 * time.Hour
)
