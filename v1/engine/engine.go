package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/indexer"
	"github.com/partnerforge/ragengine/v1/retriever"
	"github.com/partnerforge/ragengine/v1/segmenter"
	"github.com/partnerforge/ragengine/v1/tracer"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// Logger abstracts the logging operations the engine performs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// State tracks the engine lifecycle.
type State int32

const (
	StateUninitialized State = iota
	StateReady
	StateIndexing
	StateRetrieving
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateIndexing:
		return "indexing"
	case StateRetrieving:
		return "retrieving"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Embedder is the slice of the embedding client the engine manages.
type Embedder interface {
	Dimension() int
	TotalUsage() embedding.Usage
	Close() error
}

// Store is the slice of the vector store client the engine manages.
type Store interface {
	Initialize(ctx context.Context) error
	GetCollectionInfo(ctx context.Context) (*vectorstore.CollectionInfo, error)
	Close() error
}

// Engine is the top-level façade over indexing and retrieval.
type Engine struct {
	embedder  Embedder
	store     Store
	indexer   *indexer.Indexer
	retriever *retriever.Retriever
	tracing   *tracer.Tracer
	logger    Logger

	mu    sync.Mutex
	state State
}

// New creates an Engine in the Uninitialized state. tracing may be nil
// when tracing is disabled.
func New(
	embedder Embedder,
	store Store,
	idx *indexer.Indexer,
	ret *retriever.Retriever,
	tracing *tracer.Tracer,
	logger Logger,
) *Engine {
	return &Engine{
		embedder:  embedder,
		store:     store,
		indexer:   idx,
		retriever: ret,
		tracing:   tracing,
		logger:    logger,
		state:     StateUninitialized,
	}
}

// State reports the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Initialize connects the store and ensures the collection exists. It
// never returns an error: on any failure it logs, leaves the engine
// uninitialized and returns false so callers can degrade gracefully.
func (e *Engine) Initialize(ctx context.Context) bool {
	e.mu.Lock()
	switch e.state {
	case StateClosed:
		e.mu.Unlock()
		return false
	case StateReady:
		e.mu.Unlock()
		return true
	}
	e.mu.Unlock()

	ctx, span := e.startSpan(ctx, "engine.initialize")
	defer span.end()

	if e.embedder == nil || e.store == nil {
		e.logger.Error("engine missing collaborators", nil, nil)
		return false
	}

	if err := e.store.Initialize(ctx); err != nil {
		e.logger.Error("vector store initialization failed", err, nil)
		span.recordError(err)
		return false
	}

	e.mu.Lock()
	if e.state == StateClosed {
		e.mu.Unlock()
		return false
	}
	e.state = StateReady
	e.mu.Unlock()

	e.logger.Info("engine ready", nil, map[string]interface{}{
		"embedding_dimension": e.embedder.Dimension(),
	})
	return true
}

// begin moves Ready into the given busy state. Operations started while
// the engine is not Ready fail instead of queueing.
func (e *Engine) begin(busy State) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateReady {
		return fmt.Errorf("engine is %s, not ready", e.state)
	}
	e.state = busy
	return nil
}

// finish returns a busy engine to Ready unless it was closed meanwhile.
func (e *Engine) finish() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != StateClosed {
		e.state = StateReady
	}
}

// IndexReport is the fail-safe result of a corpus run.
type IndexReport struct {
	Success bool                 `json:"success"`
	Error   string               `json:"error,omitempty"`
	Result  indexer.CorpusResult `json:"result"`
}

// IndexCorpus runs a corpus through the indexer. Errors are folded into
// the report, never propagated.
func (e *Engine) IndexCorpus(ctx context.Context, source indexer.CorpusSource, defaults segmenter.DocumentMeta) IndexReport {
	if err := e.begin(StateIndexing); err != nil {
		return IndexReport{Error: err.Error()}
	}
	defer e.finish()

	ctx, span := e.startSpan(ctx, "engine.index_corpus")
	defer span.end()

	result, err := e.indexer.IndexCorpus(ctx, source, defaults)
	if err != nil {
		e.logger.Error("corpus indexing failed", err, nil)
		span.recordError(err)
		return IndexReport{Error: err.Error(), Result: result}
	}
	return IndexReport{Success: true, Result: result}
}

// SuggestionReport is the fail-safe result of a retrieval run.
type SuggestionReport struct {
	Success bool                       `json:"success"`
	Error   string                     `json:"error,omitempty"`
	Bundle  retriever.SuggestionBundle `json:"bundle"`
}

// GetSuggestions retrieves and aggregates suggestions for a partner
// profile. Errors are folded into the report, never propagated.
func (e *Engine) GetSuggestions(ctx context.Context, qc retriever.QueryContext) SuggestionReport {
	if err := e.begin(StateRetrieving); err != nil {
		return SuggestionReport{Error: err.Error()}
	}
	defer e.finish()

	ctx, span := e.startSpan(ctx, "engine.get_suggestions")
	defer span.end()

	perType, err := e.retriever.RetrieveForQuery(ctx, qc)
	if err != nil {
		e.logger.Error("suggestion retrieval failed", err, nil)
		span.recordError(err)
		return SuggestionReport{Error: err.Error()}
	}
	return SuggestionReport{Success: true, Bundle: e.retriever.Aggregate(perType)}
}

// QueryReport is the fail-safe result of a diagnostic query.
type QueryReport struct {
	Success bool                       `json:"success"`
	Error   string                     `json:"error,omitempty"`
	Results []vectorstore.SearchResult `json:"results,omitempty"`
}

// TestQuery runs an ad hoc similarity search, for diagnostics.
func (e *Engine) TestQuery(ctx context.Context, text string, limit int) QueryReport {
	if err := e.begin(StateRetrieving); err != nil {
		return QueryReport{Error: err.Error()}
	}
	defer e.finish()

	ctx, span := e.startSpan(ctx, "engine.test_query")
	defer span.end()

	results, err := e.retriever.PlainSearch(ctx, text, retriever.SearchOptions{Limit: limit})
	if err != nil {
		e.logger.Error("test query failed", err, nil)
		span.recordError(err)
		return QueryReport{Error: err.Error()}
	}
	return QueryReport{Success: true, Results: results}
}

// Stats describes the engine's collection and accumulated usage.
type Stats struct {
	State         string          `json:"state"`
	PointCount    uint64          `json:"point_count"`
	Dimension     int             `json:"dimension"`
	EmbeddingCost embedding.Usage `json:"embedding_usage"`
}

// Stats reports collection size and accumulated embedding usage. Store
// errors leave the collection fields zero; Stats itself never fails.
func (e *Engine) Stats(ctx context.Context) Stats {
	stats := Stats{
		State:         e.State().String(),
		EmbeddingCost: e.embedder.TotalUsage(),
	}

	info, err := e.store.GetCollectionInfo(ctx)
	if err != nil {
		e.logger.Warn("collection info unavailable", err, nil)
		return stats
	}
	stats.PointCount = info.Points
	stats.Dimension = info.Dimension
	return stats
}

// Close releases the store and provider handles. Safe to call more than
// once; every operation after the first Close fails.
func (e *Engine) Close() error {
	e.mu.Lock()
	if e.state == StateClosed {
		e.mu.Unlock()
		return nil
	}
	e.state = StateClosed
	e.mu.Unlock()

	var firstErr error
	if err := e.store.Close(); err != nil {
		firstErr = err
	}
	if err := e.embedder.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	e.logger.Info("engine closed", nil, nil)
	return firstErr
}
