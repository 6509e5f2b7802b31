package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/extraction"
	"github.com/partnerforge/ragengine/v1/indexer"
	"github.com/partnerforge/ragengine/v1/retriever"
	"github.com/partnerforge/ragengine/v1/section"
	"github.com/partnerforge/ragengine/v1/segmenter"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

type nopLogger struct{}

func (nopLogger) Info(string, error, ...map[string]interface{})  {}
func (nopLogger) Debug(string, error, ...map[string]interface{}) {}
func (nopLogger) Warn(string, error, ...map[string]interface{})  {}
func (nopLogger) Error(string, error, ...map[string]interface{}) {}

// fakeEmbedder satisfies the embedder slices of engine, indexer and
// retriever at once.
type fakeEmbedder struct{ closed bool }

func (f *fakeEmbedder) Dimension() int                 { return 4 }
func (f *fakeEmbedder) TotalUsage() embedding.Usage    { return embedding.Usage{Requests: 7, CostUSD: 0.014} }
func (f *fakeEmbedder) Close() error                   { f.closed = true; return nil }
func (f *fakeEmbedder) CreateEmbedding(context.Context, string) ([]float32, embedding.Usage, error) {
	return []float32{1, 0, 0, 0}, embedding.Usage{Requests: 1}, nil
}
func (f *fakeEmbedder) CreateBatch(_ context.Context, texts []string) ([][]float32, embedding.Usage, error) {
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = []float32{1, 0, 0, 0}
	}
	return out, embedding.Usage{Requests: 1, CostUSD: 0.002}, nil
}

// fakeStore satisfies the store slices of engine, indexer and retriever.
type fakeStore struct {
	initErr    error
	hybridErr  error
	closed     bool
	pointCount uint64
}

func (f *fakeStore) Initialize(context.Context) error { return f.initErr }
func (f *fakeStore) Close() error                     { f.closed = true; return nil }
func (f *fakeStore) GetCollectionInfo(context.Context) (*vectorstore.CollectionInfo, error) {
	return &vectorstore.CollectionInfo{Name: "test", Dimension: 4, Points: f.pointCount}, nil
}
func (f *fakeStore) BatchUpsert(_ context.Context, points []vectorstore.Point) vectorstore.BatchResult {
	f.pointCount += uint64(len(points))
	result := vectorstore.BatchResult{}
	for _, p := range points {
		result.Succeeded = append(result.Succeeded, p.ID)
	}
	return result
}
func (f *fakeStore) Search(context.Context, vectorstore.SearchParams) ([]vectorstore.SearchResult, error) {
	return []vectorstore.SearchResult{{ID: "a", Score: 0.9}}, nil
}
func (f *fakeStore) HybridSearch(context.Context, vectorstore.HybridParams) ([]vectorstore.HybridResult, error) {
	if f.hybridErr != nil {
		return nil, f.hybridErr
	}
	return []vectorstore.HybridResult{{
		SearchResult: vectorstore.SearchResult{
			ID: "a",
			Payload: map[string]any{
				section.FieldEntity:  "Acme Foundation",
				section.FieldContent: "Reusable content.",
			},
		},
		FinalScore: 0.9,
	}}, nil
}

type fakeExtractor struct{}

func (fakeExtractor) ExtractTextBlocks(_ context.Context, path string) ([]extraction.TextBlock, error) {
	if filepath.Base(path) == "bad.pdf" {
		return nil, errors.New("unreadable document")
	}
	return []extraction.TextBlock{
		{Page: 1, Text: "Our curriculum spans twelve workshop sessions held weekly."},
	}, nil
}

func newTestEngine(store *fakeStore) *Engine {
	embedder := &fakeEmbedder{}
	seg := segmenter.New(segmenter.DefaultConfig())

	idxCfg := indexer.DefaultConfig()
	idxCfg.InterDocumentDelay = 0
	idx := indexer.New(idxCfg, fakeExtractor{}, seg, embedder, store, nil, nopLogger{})
	ret := retriever.New(retriever.DefaultConfig(), embedder, store, nil, nopLogger{})

	return New(embedder, store, idx, ret, nil, nopLogger{})
}

func TestInitializeTransitionsToReady(t *testing.T) {
	e := newTestEngine(&fakeStore{})

	if e.State() != StateUninitialized {
		t.Fatalf("initial state = %v", e.State())
	}
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize returned false")
	}
	if e.State() != StateReady {
		t.Errorf("state after Initialize = %v, want ready", e.State())
	}

	// Idempotent.
	if !e.Initialize(context.Background()) {
		t.Error("second Initialize returned false")
	}
}

func TestInitializeFailsSafe(t *testing.T) {
	e := newTestEngine(&fakeStore{initErr: vectorstore.ErrUnavailable})

	if e.Initialize(context.Background()) {
		t.Fatal("Initialize must return false when the store is unreachable")
	}
	if e.State() != StateUninitialized {
		t.Errorf("state = %v, want uninitialized", e.State())
	}
}

func TestOperationsRequireReady(t *testing.T) {
	e := newTestEngine(&fakeStore{})

	report := e.GetSuggestions(context.Background(), retriever.QueryContext{})
	if report.Success {
		t.Error("GetSuggestions before Initialize must fail")
	}
	if report.Error == "" {
		t.Error("failed report must carry a cause")
	}

	idxReport := e.IndexCorpus(context.Background(), indexer.NewDirectorySource(t.TempDir(), "*.pdf"), segmenter.DocumentMeta{})
	if idxReport.Success {
		t.Error("IndexCorpus before Initialize must fail")
	}
}

func TestGetSuggestionsHappyPath(t *testing.T) {
	e := newTestEngine(&fakeStore{})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	report := e.GetSuggestions(context.Background(), retriever.QueryContext{Entity: "Acme Foundation"})
	if !report.Success {
		t.Fatalf("GetSuggestions failed: %s", report.Error)
	}
	if len(report.Bundle.Suggestions) == 0 {
		t.Error("bundle is empty")
	}
	if e.State() != StateReady {
		t.Errorf("state after retrieval = %v, want ready", e.State())
	}
}

func TestTestQuery(t *testing.T) {
	e := newTestEngine(&fakeStore{})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	report := e.TestQuery(context.Background(), "mentorship outcomes", 5)
	if !report.Success {
		t.Fatalf("TestQuery failed: %s", report.Error)
	}
	if len(report.Results) != 1 {
		t.Errorf("got %d results, want 1", len(report.Results))
	}
}

func TestStats(t *testing.T) {
	e := newTestEngine(&fakeStore{pointCount: 42})
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	stats := e.Stats(context.Background())
	if stats.PointCount != 42 {
		t.Errorf("PointCount = %d, want 42", stats.PointCount)
	}
	if stats.Dimension != 4 {
		t.Errorf("Dimension = %d, want 4", stats.Dimension)
	}
	if stats.EmbeddingCost.Requests != 7 {
		t.Errorf("EmbeddingCost = %+v", stats.EmbeddingCost)
	}
	if stats.State != "ready" {
		t.Errorf("State = %q, want ready", stats.State)
	}
}

func TestCloseIsIdempotentAndTerminal(t *testing.T) {
	store := &fakeStore{}
	e := newTestEngine(store)
	if !e.Initialize(context.Background()) {
		t.Fatal("Initialize failed")
	}

	if err := e.Close(); err != nil {
		t.Fatalf("Close returned error: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second Close returned error: %v", err)
	}
	if !store.closed {
		t.Error("store was not closed")
	}

	if e.State() != StateClosed {
		t.Errorf("state = %v, want closed", e.State())
	}
	if e.Initialize(context.Background()) {
		t.Error("Initialize after Close must fail")
	}
	if report := e.GetSuggestions(context.Background(), retriever.QueryContext{}); report.Success {
		t.Error("operations after Close must fail")
	}
}
