package indexer

import (
	"context"
	"fmt"
	"time"

	"github.com/partnerforge/ragengine/v1/embedding"
	"github.com/partnerforge/ragengine/v1/extraction"
	"github.com/partnerforge/ragengine/v1/metrics"
	"github.com/partnerforge/ragengine/v1/section"
	"github.com/partnerforge/ragengine/v1/segmenter"
	"github.com/partnerforge/ragengine/v1/vectorstore"
)

// Logger abstracts the logging operations the indexer performs.
type Logger interface {
	Info(msg string, err error, fields ...map[string]interface{})
	Debug(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
}

// Embedder is the slice of the embedding client the indexer uses.
type Embedder interface {
	CreateBatch(ctx context.Context, texts []string) ([][]float32, embedding.Usage, error)
}

// Store is the slice of the vector store client the indexer uses.
type Store interface {
	BatchUpsert(ctx context.Context, points []vectorstore.Point) vectorstore.BatchResult
}

// DocumentResult reports one indexed document.
type DocumentResult struct {
	SectionsIndexed int      `json:"sections_indexed"`
	PointIDs        []string `json:"point_ids"`
	CostUSD         float64  `json:"cost_usd"`
}

// DocumentFailure records a document that could not be indexed during a
// corpus run.
type DocumentFailure struct {
	Name  string `json:"name"`
	Cause string `json:"cause"`
}

// CorpusResult aggregates a whole corpus run.
type CorpusResult struct {
	Indexed       int               `json:"indexed"`
	Failed        int               `json:"failed"`
	TotalSections int               `json:"total_sections"`
	CostUSD       float64           `json:"cost_usd"`
	Failures      []DocumentFailure `json:"failures,omitempty"`
}

// Indexer wires extraction, segmentation, embedding and storage into the
// indexing pipeline.
type Indexer struct {
	cfg       Config
	extractor extraction.Extractor
	segmenter *segmenter.Segmenter
	embedder  Embedder
	store     Store
	collector metrics.Collector
	logger    Logger
}

// New creates an Indexer. collector may be nil when metrics are disabled.
func New(
	cfg Config,
	extractor extraction.Extractor,
	seg *segmenter.Segmenter,
	embedder Embedder,
	store Store,
	collector metrics.Collector,
	logger Logger,
) *Indexer {
	return &Indexer{
		cfg:       cfg,
		extractor: extractor,
		segmenter: seg,
		embedder:  embedder,
		store:     store,
		collector: collector,
		logger:    logger,
	}
}

// IndexDocument runs the full pipeline for a single source file. All
// sections of the document are embedded in one batch call, then upserted
// in one batch operation.
func (i *Indexer) IndexDocument(ctx context.Context, path string, meta segmenter.DocumentMeta) (DocumentResult, error) {
	blocks, err := i.extractor.ExtractTextBlocks(ctx, path)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("extracting %q: %w", path, err)
	}

	sections := i.segmenter.ExtractSections(blocks, meta)
	if len(sections) == 0 {
		i.logger.Warn("document produced no sections", nil, map[string]interface{}{
			"path": path,
		})
		return DocumentResult{PointIDs: []string{}}, nil
	}

	texts := make([]string, len(sections))
	for idx, s := range sections {
		texts[idx] = embedding.EnrichText(s)
	}

	vectors, usage, err := i.embedder.CreateBatch(ctx, texts)
	if err != nil {
		return DocumentResult{}, fmt.Errorf("embedding %d sections of %q: %w", len(sections), path, err)
	}

	// Every run stamps the sections it writes, so re-indexing a document
	// refreshes IndexedAt on its points. Truncated to seconds, the payload
	// date resolution.
	indexedAt := time.Now().UTC().Truncate(time.Second)

	points := make([]vectorstore.Point, len(sections))
	for idx, s := range sections {
		s.IndexedAt = indexedAt
		points[idx] = vectorstore.Point{
			ID:      section.PointID(s),
			Vector:  vectors[idx],
			Payload: section.ToPayload(s),
		}
	}

	batch := i.store.BatchUpsert(ctx, points)
	if len(batch.Failed) > 0 {
		return DocumentResult{}, fmt.Errorf("upserting %q: %d of %d points failed: %w",
			path, len(batch.Failed), len(points), batch.Failed[0].Err)
	}

	if i.collector != nil {
		for _, s := range sections {
			i.collector.AddSectionsIndexed(string(s.Type), 1)
		}
		i.collector.AddEmbeddingCost(usage.CostUSD)
	}

	i.logger.Info("document indexed", nil, map[string]interface{}{
		"path":     path,
		"entity":   meta.Entity,
		"sections": len(sections),
		"cost_usd": usage.CostUSD,
	})

	return DocumentResult{
		SectionsIndexed: len(sections),
		PointIDs:        batch.Succeeded,
		CostUSD:         usage.CostUSD,
	}, nil
}

// IndexCorpus indexes every document a source lists, sequentially, pausing
// InterDocumentDelay between documents. A failing document is recorded in
// the result and the run continues.
func (i *Indexer) IndexCorpus(ctx context.Context, source CorpusSource, defaults segmenter.DocumentMeta) (CorpusResult, error) {
	names, err := source.List(ctx)
	if err != nil {
		return CorpusResult{}, fmt.Errorf("listing corpus: %w", err)
	}

	i.logger.Info("corpus run started", nil, map[string]interface{}{
		"documents": len(names),
	})

	var result CorpusResult
	for idx, name := range names {
		if idx > 0 && i.cfg.InterDocumentDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(i.cfg.InterDocumentDelay):
			}
		}

		docResult, err := i.indexOne(ctx, source, name, defaults)
		if err != nil {
			if ctx.Err() != nil {
				return result, ctx.Err()
			}
			result.Failed++
			result.Failures = append(result.Failures, DocumentFailure{Name: name, Cause: err.Error()})
			i.logger.Error("document failed, continuing corpus run", err, map[string]interface{}{
				"name": name,
			})
			continue
		}

		result.Indexed++
		result.TotalSections += docResult.SectionsIndexed
		result.CostUSD += docResult.CostUSD
	}

	i.logger.Info("corpus run finished", nil, map[string]interface{}{
		"indexed":        result.Indexed,
		"failed":         result.Failed,
		"total_sections": result.TotalSections,
		"cost_usd":       result.CostUSD,
	})
	return result, nil
}

func (i *Indexer) indexOne(ctx context.Context, source CorpusSource, name string, defaults segmenter.DocumentMeta) (DocumentResult, error) {
	path, cleanup, err := source.Fetch(ctx, name)
	if err != nil {
		return DocumentResult{}, err
	}
	defer cleanup()

	meta := defaults
	meta.FileName = name
	if meta.Entity == "" {
		meta.Entity = DeriveEntity(name)
	}
	if meta.DocumentDate.IsZero() {
		meta.DocumentDate = time.Now().UTC()
	}

	return i.IndexDocument(ctx, path, meta)
}
