package section

import (
	"fmt"
	"strings"
	"time"
)

// Type classifies what role a section plays inside a partnership document.
type Type string

const (
	Cover            Type = "cover"
	ValueProposition Type = "value_proposition"
	ProgramDetails   Type = "program_details"
	Metrics          Type = "metrics"
	Testimonials     Type = "testimonials"
	CTA              Type = "cta"
	About            Type = "about"
)

// AllTypes lists every valid section type in document order.
var AllTypes = []Type{Cover, ValueProposition, ProgramDetails, Metrics, Testimonials, CTA, About}

// RetrievableTypes lists the types the retriever builds queries for.
// Cover pages carry branding rather than reusable content, so they are
// indexed but never suggested.
var RetrievableTypes = []Type{ValueProposition, ProgramDetails, Metrics, Testimonials, CTA, About}

// String returns the wire representation of the type.
func (t Type) String() string {
	return string(t)
}

// Valid reports whether t is one of the known section types.
func (t Type) Valid() bool {
	for _, known := range AllTypes {
		if t == known {
			return true
		}
	}
	return false
}

// ParseType converts a wire string into a Type.
// Matching is case-insensitive so payloads written by older indexer
// versions (upper-case enum names) still parse.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("section: unknown section type %q", s)
	}
	return t, nil
}

// Metadata carries provenance and filtering context for a section.
type Metadata struct {
	// Page is the 1-based page number in the source document.
	Page int `json:"page"`

	// FileName is the base name of the source document.
	FileName string `json:"fileName"`

	// Industry of the partner organization, e.g. "technology".
	Industry string `json:"industry"`

	// PartnershipType, e.g. "corporate", "government", "ngo".
	PartnershipType string `json:"partnership_type"`
}

// Section is the atomic retrievable unit: one page of extracted text,
// classified and scored.
type Section struct {
	// Entity is the organization the document concerns.
	Entity string `json:"entity"`

	// Type is the classified section type.
	Type Type `json:"section_type"`

	// Content is the extracted page text.
	Content string `json:"content"`

	// DocumentDate is when the source document was produced.
	// Used for recency boosting; may be zero when unknown.
	DocumentDate time.Time `json:"document_date"`

	// PerformanceScore is a caller-supplied quality label in [0,1]
	// marking how successful the source document was.
	PerformanceScore float64 `json:"performance_score"`

	// IndexedAt is when the section was last written to the store.
	// Stamped by the indexer on every run, so re-indexing a document
	// refreshes it.
	IndexedAt time.Time `json:"indexed_at,omitempty"`

	// Metadata carries provenance fields.
	Metadata Metadata `json:"metadata"`
}

// Validate checks the invariants every section must satisfy before it may
// be embedded or stored.
func (s Section) Validate() error {
	if strings.TrimSpace(s.Content) == "" {
		return fmt.Errorf("section: empty content")
	}
	if !s.Type.Valid() {
		return fmt.Errorf("section: unknown section type %q", s.Type)
	}
	if s.PerformanceScore < 0 || s.PerformanceScore > 1 {
		return fmt.Errorf("section: performance score %v outside [0,1]", s.PerformanceScore)
	}
	return nil
}
