package vectorstore

import (
	"context"
	"fmt"
	"slices"

	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/partnerforge/ragengine/v1/section"
)

// indexedFields are the payload fields a secondary index is built on, so
// hard filters in hybrid search stay store-side and fast.
var indexedFields = map[string]qdrant.FieldType{
	section.FieldEntity:       qdrant.FieldType_FieldTypeKeyword,
	section.FieldSectionType:  qdrant.FieldType_FieldTypeKeyword,
	section.FieldDocumentDate: qdrant.FieldType_FieldTypeDatetime,
}

// Initialize moves the client from Connected to CollectionReady: it verifies
// connectivity, creates the collection if absent with the configured
// dimension and cosine distance, and builds the payload indexes.
//
// Safe to call multiple times; an existing collection is left untouched.
func (c *Client) Initialize(ctx context.Context) error {
	if c.state == Disconnected {
		return fmt.Errorf("vectorstore: initialize: %w", ErrNotConnected)
	}
	if err := c.healthCheck(); err != nil {
		return err
	}

	if err := c.ensureCollection(ctx); err != nil {
		return err
	}
	if err := c.ensurePayloadIndexes(ctx); err != nil {
		return err
	}

	c.state = CollectionReady
	c.logger.Info("collection ready", nil, map[string]interface{}{
		"collection": c.cfg.Collection, "dimension": c.cfg.Dimension,
	})
	return nil
}

// ensureCollection creates the configured collection if missing.
func (c *Client) ensureCollection(ctx context.Context) error {
	name := c.cfg.Collection
	if name == "" {
		return fmt.Errorf("vectorstore: collection name cannot be empty")
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	collections, err := c.api.ListCollections(opCtx)
	if err != nil {
		return fmt.Errorf("vectorstore: failed to list collections: %v: %w", err, ErrUnavailable)
	}

	if slices.Contains(collections, name) {
		c.logger.Debug("collection already exists", nil, map[string]interface{}{"collection": name})
		return nil
	}

	c.logger.Info("creating collection", nil, map[string]interface{}{
		"collection": name, "dimension": c.cfg.Dimension,
	})

	req := &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     uint64(c.cfg.Dimension),
			Distance: qdrant.Distance_Cosine,
		}),
	}

	if err := c.api.CreateCollection(opCtx, req); err != nil {
		return fmt.Errorf("vectorstore: failed to create collection %q: %v: %w", name, err, ErrUnavailable)
	}
	return nil
}

// ensurePayloadIndexes builds the secondary indexes used by filtered search.
// Qdrant treats repeated index creation as a no-op, so this is idempotent.
func (c *Client) ensurePayloadIndexes(ctx context.Context) error {
	for field, fieldType := range indexedFields {
		opCtx, cancel := c.opContext(ctx)
		_, err := c.api.CreateFieldIndex(opCtx, &qdrant.CreateFieldIndexCollection{
			CollectionName: c.cfg.Collection,
			FieldName:      field,
			FieldType:      fieldType.Enum(),
		})
		cancel()
		if err != nil {
			return fmt.Errorf("vectorstore: failed to index payload field %q: %v: %w", field, err, ErrUnavailable)
		}
	}
	return nil
}

// Upsert writes a single point. Idempotent: a second call with the same id
// overwrites the first.
func (c *Client) Upsert(ctx context.Context, p Point) error {
	res := c.BatchUpsert(ctx, []Point{p})
	if len(res.Failed) > 0 {
		return res.Failed[0].Err
	}
	return nil
}

// BatchUpsert writes points in chunks of defaultBatchSize and reports which
// ids failed on partial provider-side failure; it does not assume
// all-or-nothing. Vector dimensions are validated before anything is sent.
func (c *Client) BatchUpsert(ctx context.Context, points []Point) BatchResult {
	var result BatchResult
	if len(points) == 0 {
		return result
	}

	if err := c.ready(); err != nil {
		for _, p := range points {
			result.Failed = append(result.Failed, IDError{ID: p.ID, Err: err})
		}
		return result
	}

	// Validation failures are per-point: one malformed vector must not
	// sink the rest of the document.
	valid := make([]Point, 0, len(points))
	for _, p := range points {
		if len(p.Vector) != c.cfg.Dimension {
			result.Failed = append(result.Failed, IDError{
				ID:  p.ID,
				Err: fmt.Errorf("vectorstore: vector has size %d, collection wants %d: %w", len(p.Vector), c.cfg.Dimension, ErrDimensionMismatch),
			})
			continue
		}
		valid = append(valid, p)
	}

	for start := 0; start < len(valid); start += defaultBatchSize {
		end := min(start+defaultBatchSize, len(valid))
		batch := valid[start:end]

		if err := c.upsertBatch(ctx, batch); err != nil {
			for _, p := range batch {
				result.Failed = append(result.Failed, IDError{ID: p.ID, Err: err})
			}
			continue
		}
		for _, p := range batch {
			result.Succeeded = append(result.Succeeded, p.ID)
		}
		c.logger.Debug("upserted batch", nil, map[string]interface{}{
			"from": start, "to": end, "collection": c.cfg.Collection,
		})
	}

	return result
}

// upsertBatch sends one blocking Upsert request (Wait=true) so data is
// persisted before returning.
func (c *Client) upsertBatch(ctx context.Context, batch []Point) error {
	points := make([]*qdrant.PointStruct, 0, len(batch))
	for _, p := range batch {
		points = append(points, &qdrant.PointStruct{
			Id:      qdrant.NewID(p.ID),
			Vectors: qdrant.NewVectors(p.Vector...),
			Payload: qdrant.NewValueMap(p.Payload),
		})
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	wait := true
	req := &qdrant.UpsertPoints{
		CollectionName: c.cfg.Collection,
		Points:         points,
		Wait:           &wait,
	}

	if _, err := c.api.Upsert(opCtx, req); err != nil {
		return fmt.Errorf("vectorstore: upsert failed: %v: %w", err, ErrUnavailable)
	}
	return nil
}

// Search performs a similarity search. Results below params.ScoreThreshold
// are pruned by the store before any client-side handling.
func (c *Client) Search(ctx context.Context, params SearchParams) ([]SearchResult, error) {
	if err := c.ready(); err != nil {
		return nil, err
	}
	if err := c.validateQuery(params.Vector, params.Limit); err != nil {
		return nil, err
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	limit := uint64(params.Limit)
	req := &qdrant.QueryPoints{
		CollectionName: c.cfg.Collection,
		Query:          qdrant.NewQuery(params.Vector...),
		Limit:          &limit,
		WithPayload:    qdrant.NewWithPayload(true),
		Filter:         buildFilter(params.Filter),
	}
	if params.ScoreThreshold > 0 {
		threshold := float32(params.ScoreThreshold)
		req.ScoreThreshold = &threshold
	}

	resp, err := c.api.Query(opCtx, req)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: search failed: %v: %w", err, ErrUnavailable)
	}

	results, err := parseScoredPoints(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("search returned", nil, map[string]interface{}{"results": len(results)})
	return results, nil
}

// Delete removes points by their ids. Waits for completion.
func (c *Client) Delete(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := c.ready(); err != nil {
		return err
	}

	qdrantIDs := make([]*qdrant.PointId, 0, len(ids))
	for _, id := range ids {
		qdrantIDs = append(qdrantIDs, qdrant.NewID(id))
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	wait := true
	req := &qdrant.DeletePoints{
		CollectionName: c.cfg.Collection,
		Points: &qdrant.PointsSelector{
			PointsSelectorOneOf: &qdrant.PointsSelector_Points{
				Points: &qdrant.PointsIdsList{Ids: qdrantIDs},
			},
		},
		Wait: &wait,
	}

	if _, err := c.api.Delete(opCtx, req); err != nil {
		return fmt.Errorf("vectorstore: delete failed: %v: %w", err, ErrUnavailable)
	}
	return nil
}

// GetCollectionInfo retrieves metadata about the configured collection,
// decoupled from the SDK's protobuf types.
func (c *Client) GetCollectionInfo(ctx context.Context) (*CollectionInfo, error) {
	if c.state == Disconnected {
		return nil, ErrNotConnected
	}

	opCtx, cancel := c.opContext(ctx)
	defer cancel()

	info, err := c.api.GetCollectionInfo(opCtx, c.cfg.Collection)
	if err != nil {
		return nil, fmt.Errorf("vectorstore: failed to get collection %q: %v: %w", c.cfg.Collection, err, ErrUnavailable)
	}

	size, distance := extractVectorDetails(info)

	return &CollectionInfo{
		Name:      c.cfg.Collection,
		Status:    info.Status.String(),
		Dimension: size,
		Distance:  distance,
		Points:    derefUint64(info.PointsCount),
	}, nil
}
