package vectorstore

import (
	"fmt"

	qdrant "github.com/qdrant/go-client/qdrant"
)

// validateQuery validates common search parameters. A query vector of the
// wrong dimension is a validation error and must never be retried.
func (c *Client) validateQuery(vector []float32, limit int) error {
	if len(vector) == 0 {
		return fmt.Errorf("vectorstore: query vector cannot be empty")
	}
	if len(vector) != c.cfg.Dimension {
		return fmt.Errorf("vectorstore: query vector has size %d, collection wants %d: %w",
			len(vector), c.cfg.Dimension, ErrDimensionMismatch)
	}
	if limit <= 0 {
		return fmt.Errorf("vectorstore: limit must be greater than 0")
	}
	return nil
}

// parseScoredPoints converts a Qdrant query response into SearchResults,
// decoding point ids and payload values out of the SDK's protobuf types.
func parseScoredPoints(resp []*qdrant.ScoredPoint) ([]SearchResult, error) {
	results := make([]SearchResult, 0, len(resp))
	for _, r := range resp {
		var id string
		switch v := r.Id.PointIdOptions.(type) {
		case *qdrant.PointId_Num:
			id = fmt.Sprintf("%d", v.Num)
		case *qdrant.PointId_Uuid:
			id = v.Uuid
		default:
			return nil, fmt.Errorf("vectorstore: unexpected PointId type: %T", v)
		}

		results = append(results, SearchResult{
			ID:      id,
			Score:   float64(r.Score),
			Payload: valueMapToAny(r.Payload),
		})
	}
	return results, nil
}

// valueMapToAny converts a Qdrant payload into plain Go values.
func valueMapToAny(payload map[string]*qdrant.Value) map[string]any {
	if payload == nil {
		return nil
	}
	out := make(map[string]any, len(payload))
	for k, v := range payload {
		out[k] = valueToAny(v)
	}
	return out
}

// valueToAny unwraps one protobuf Value, recursing into structs and lists.
func valueToAny(v *qdrant.Value) any {
	if v == nil {
		return nil
	}
	switch kind := v.Kind.(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_StructValue:
		return valueMapToAny(kind.StructValue.Fields)
	case *qdrant.Value_ListValue:
		items := make([]any, 0, len(kind.ListValue.Values))
		for _, item := range kind.ListValue.Values {
			items = append(items, valueToAny(item))
		}
		return items
	default:
		return nil
	}
}

// asPayloadString reads a string out of a decoded payload value.
func asPayloadString(v any) string {
	s, _ := v.(string)
	return s
}

// asPayloadFloat reads a number out of a decoded payload value, tolerating
// the integer widening a payload round-trip can produce.
func asPayloadFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

// extractVectorDetails safely extracts the vector size and distance metric
// from a CollectionInfo, guarding against the SDK's nested oneof wrappers.
// Missing or unexpected fields yield (0, "").
func extractVectorDetails(info *qdrant.CollectionInfo) (int, string) {
	if info == nil ||
		info.Config == nil ||
		info.Config.Params == nil ||
		info.Config.Params.VectorsConfig == nil ||
		info.Config.Params.VectorsConfig.Config == nil {
		return 0, ""
	}

	if cfg, ok := info.Config.Params.VectorsConfig.Config.(*qdrant.VectorsConfig_Params); ok {
		return int(cfg.Params.Size), cfg.Params.Distance.String()
	}

	return 0, ""
}

// derefUint64 safely dereferences a *uint64, returning 0 for nil.
func derefUint64(v *uint64) uint64 {
	if v != nil {
		return *v
	}
	return 0
}
