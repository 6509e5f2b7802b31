package section

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"
)

// Payload field names persisted in the vector store. The top-level fields
// are the ones the store builds secondary indexes on; everything else lives
// under "metadata".
const (
	FieldEntity           = "entity"
	FieldSectionType      = "section_type"
	FieldContent          = "content"
	FieldDocumentDate     = "document_date"
	FieldPerformanceScore = "performance_score"
	FieldIndexedAt        = "indexed_at"
	FieldMetadata         = "metadata"
)

// PointID derives a stable UUID for a section from entity, file name and
// page. Upserting the same section twice therefore overwrites instead of
// duplicating.
func PointID(s Section) string {
	sum := sha256.Sum256([]byte(strings.ToLower(s.Entity) + "\x00" + s.Metadata.FileName + "\x00" + fmt.Sprintf("%d", s.Metadata.Page)))

	// Format the first 16 bytes as a UUID with version/variant bits set,
	// since the store only accepts UUID or integer point ids.
	b := sum[:16]
	b[6] = (b[6] & 0x0f) | 0x50
	b[8] = (b[8] & 0x3f) | 0x80

	var out [36]byte
	hex.Encode(out[0:8], b[0:4])
	out[8] = '-'
	hex.Encode(out[9:13], b[4:6])
	out[13] = '-'
	hex.Encode(out[14:18], b[6:8])
	out[18] = '-'
	hex.Encode(out[19:23], b[8:10])
	out[23] = '-'
	hex.Encode(out[24:36], b[10:16])
	return string(out[:])
}

// ToPayload converts a section into the persisted payload layout.
func ToPayload(s Section) map[string]any {
	payload := map[string]any{
		FieldEntity:           s.Entity,
		FieldSectionType:      s.Type.String(),
		FieldContent:          s.Content,
		FieldPerformanceScore: s.PerformanceScore,
		FieldMetadata: map[string]any{
			"page":             s.Metadata.Page,
			"fileName":         s.Metadata.FileName,
			"industry":         s.Metadata.Industry,
			"partnership_type": s.Metadata.PartnershipType,
		},
	}
	if !s.DocumentDate.IsZero() {
		payload[FieldDocumentDate] = s.DocumentDate.UTC().Format(time.RFC3339)
	}
	if !s.IndexedAt.IsZero() {
		payload[FieldIndexedAt] = s.IndexedAt.UTC().Format(time.RFC3339)
	}
	return payload
}

// FromPayload reconstructs a section from a stored payload.
// Missing optional fields (document date, metadata entries) are tolerated;
// a missing or invalid section type is not.
func FromPayload(payload map[string]any) (Section, error) {
	s := Section{
		Entity:  asString(payload[FieldEntity]),
		Content: asString(payload[FieldContent]),
	}

	t, err := ParseType(asString(payload[FieldSectionType]))
	if err != nil {
		return Section{}, err
	}
	s.Type = t

	if v, ok := payload[FieldPerformanceScore]; ok {
		s.PerformanceScore = asFloat(v)
	}

	if raw := asString(payload[FieldDocumentDate]); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Section{}, fmt.Errorf("section: bad document_date %q: %w", raw, err)
		}
		s.DocumentDate = ts
	}

	if raw := asString(payload[FieldIndexedAt]); raw != "" {
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return Section{}, fmt.Errorf("section: bad indexed_at %q: %w", raw, err)
		}
		s.IndexedAt = ts
	}

	if meta, ok := payload[FieldMetadata].(map[string]any); ok {
		s.Metadata = Metadata{
			Page:            int(asFloat(meta["page"])),
			FileName:        asString(meta["fileName"]),
			Industry:        asString(meta["industry"]),
			PartnershipType: asString(meta["partnership_type"]),
		}
	}

	return s, nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

// asFloat tolerates the numeric types a payload round-trip can produce.
func asFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
