package retriever

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/metrics"
	"github.com/partnerforge/ragengine/v1/section"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// Logger abstracts the logging operations the retriever performs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Embedder is the slice of the embedding client the retriever uses.
type Embedder interface {
	CreateEmbedding(ctx context.Context, text string) ([]float32, embedding.Usage, error)
}

// Store is the slice of the vector store client the retriever uses.
type Store interface {
	Search(ctx context.Context, params vectorstore.SearchParams) ([]vectorstore.SearchResult, error)
	HybridSearch(ctx context.Context, params vectorstore.HybridParams) ([]vectorstore.HybridResult, error)
}

// TypeResult holds the ranked results for one section type.
type TypeResult struct {
	SectionType section.Type               `json:"section_type"`
	Results     []vectorstore.HybridResult `json:"results"`

	// Confidence is min(mean final score * ConfidenceScale, 1.0); zero
	// when no results survived.
	Confidence float64 `json:"confidence"`
}

// Retriever executes per-section-type hybrid retrieval.
type Retriever struct {
	cfg       Config
	embedder  Embedder
	store     Store
	collector metrics.Collector
	logger    Logger
}

// New creates a Retriever. collector may be nil when metrics are disabled.
func New(cfg Config, embedder Embedder, store Store, collector metrics.Collector, logger Logger) *Retriever {
	return &Retriever{
		cfg:       cfg,
		embedder:  embedder,
		store:     store,
		collector: collector,
		logger:    logger,
	}
}

// RetrieveForQuery runs hybrid retrieval for every retrievable section
// type concurrently. A type that errors is logged and omitted from the
// result, the remaining types are unaffected.
func (r *Retriever) RetrieveForQuery(ctx context.Context, qc QueryContext) (map[section.Type]TypeResult, error) {
	start := time.Now()
	defer func() {
		if r.collector != nil {
			r.collector.RecordRetrievalDuration(start, "retrieve_for_query")
		}
	}()

	var (
		mu      sync.Mutex
		perType = make(map[section.Type]TypeResult, len(section.RetrievableTypes))
	)

	g, gctx := errgroup.WithContext(ctx)
	for _, t := range section.RetrievableTypes {
		g.Go(func() error {
			result, err := r.retrieveType(gctx, t, qc)
			if err != nil {
				// Isolated failure: the other types still return.
				r.logger.Warn("section type retrieval failed", err, map[string]interface{}{
					"section_type": string(t),
				})
				return nil
			}

			mu.Lock()
			perType[t] = result
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return perType, nil
}

func (r *Retriever) retrieveType(ctx context.Context, t section.Type, qc QueryContext) (TypeResult, error) {
	query := buildQuery(t, qc)

	vector, _, err := r.embedder.CreateEmbedding(ctx, query)
	if err != nil {
		return TypeResult{}, fmt.Errorf("embedding query for %s: %w", t, err)
	}

	results, err := r.store.HybridSearch(ctx, vectorstore.HybridParams{
		Vector:              vector,
		Keywords:            queryTemplates[t].keywords,
		SectionTypes:        []section.Type{t},
		MinPerformanceScore: r.cfg.MinPerformance,
		BoostRecency:        true,
		Limit:               r.cfg.TopPerType,
	})
	if err != nil {
		return TypeResult{}, fmt.Errorf("hybrid search for %s: %w", t, err)
	}

	return TypeResult{
		SectionType: t,
		Results:     results,
		Confidence:  r.confidence(results),
	}, nil
}

func (r *Retriever) confidence(results []vectorstore.HybridResult) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, res := range results {
		sum += res.FinalScore
	}
	c := sum / float64(len(results)) * r.cfg.ConfidenceScale
	if c > 1.0 {
		c = 1.0
	}
	return c
}

// SearchOptions configures the diagnostic entry points.
type SearchOptions struct {
	Limit          int            `json:"limit"`
	SectionTypes   []section.Type `json:"section_types,omitempty"`
	MinPerformance float64        `json:"min_performance,omitempty"`
	ScoreThreshold float64        `json:"score_threshold,omitempty"`

	// Entity limits results to one organization's documents.
	Entity string `json:"entity,omitempty"`

	// ExcludeEntities drops results from the named organizations, e.g.
	// the entity a proposal is being written for.
	ExcludeEntities []string `json:"exclude_entities,omitempty"`

	// IndexedSince keeps only sections written to the store at or after
	// this time, useful for inspecting what a recent corpus run produced.
	IndexedSince time.Time `json:"indexed_since,omitempty"`
}

// PlainSearch embeds text and runs a plain filtered similarity search,
// bypassing hybrid re-ranking.
func (r *Retriever) PlainSearch(ctx context.Context, text string, opts SearchOptions) ([]vectorstore.SearchResult, error) {
	start := time.Now()
	defer func() {
		if r.collector != nil {
			r.collector.RecordRetrievalDuration(start, "plain_search")
		}
	}()

	vector, _, err := r.embedder.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding search text: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.TopPerType
	}

	return r.store.Search(ctx, vectorstore.SearchParams{
		Vector:         vector,
		Limit:          limit,
		Filter:         searchFilter(opts),
		ScoreThreshold: opts.ScoreThreshold,
	})
}

// searchFilter translates SearchOptions into store filter clauses. Returns
// nil when no option constrains the search.
func searchFilter(opts SearchOptions) *vectorstore.FilterSet {
	must := &vectorstore.ConditionSet{}

	if opts.Entity != "" {
		must.Conditions = append(must.Conditions, vectorstore.TextCondition{
			Key:   section.FieldEntity,
			Value: opts.Entity,
		})
	}
	if len(opts.SectionTypes) > 0 {
		values := make([]string, len(opts.SectionTypes))
		for i, t := range opts.SectionTypes {
			values[i] = string(t)
		}
		must.Conditions = append(must.Conditions, vectorstore.TextAnyCondition{
			Key:    section.FieldSectionType,
			Values: values,
		})
	}
	if opts.MinPerformance > 0 {
		must.Conditions = append(must.Conditions, vectorstore.NumericRangeCondition{
			Key:   section.FieldPerformanceScore,
			Value: vectorstore.NumericRange{Gte: &opts.MinPerformance},
		})
	}
	if !opts.IndexedSince.IsZero() {
		since := opts.IndexedSince
		must.Conditions = append(must.Conditions, vectorstore.TimeRangeCondition{
			Key:   section.FieldIndexedAt,
			Value: vectorstore.TimeRange{Gte: &since},
		})
	}

	var mustNot *vectorstore.ConditionSet
	if len(opts.ExcludeEntities) > 0 {
		mustNot = &vectorstore.ConditionSet{Conditions: []vectorstore.FilterCondition{
			vectorstore.TextAnyCondition{Key: section.FieldEntity, Values: opts.ExcludeEntities},
		}}
	}

	if len(must.Conditions) == 0 && mustNot == nil {
		return nil
	}
	return &vectorstore.FilterSet{Must: must, MustNot: mustNot}
}

// FindSimilar embeds text and runs a hybrid search with recency boosting,
// for "more like this" style querying.
func (r *Retriever) FindSimilar(ctx context.Context, text string, opts SearchOptions) ([]vectorstore.HybridResult, error) {
	start := time.Now()
	defer func() {
		if r.collector != nil {
			r.collector.RecordRetrievalDuration(start, "find_similar")
		}
	}()

	vector, _, err := r.embedder.CreateEmbedding(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("embedding reference text: %w", err)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = r.cfg.TopPerType
	}

	return r.store.HybridSearch(ctx, vectorstore.HybridParams{
		Vector:              vector,
		SectionTypes:        opts.SectionTypes,
		MinPerformanceScore: opts.MinPerformance,
		BoostRecency:        true,
		Limit:               limit,
	})
}
