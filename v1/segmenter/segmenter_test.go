package segmenter

import (
	"strings"
	"testing"
	"time"

	"github.com/partnerforge/ragengine/v1/extraction"
	"github.com/partnerforge/ragengine/v1/section"
)

func testMeta() DocumentMeta {
	return DocumentMeta{
		Entity:           "Acme Foundation",
		FileName:         "acme_partnership.pdf",
		Industry:         "education",
		PartnershipType:  "ngo",
		DocumentDate:     time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
		PerformanceScore: 0.9,
	}
}

func TestExtractSectionsGroupsByPage(t *testing.T) {
	seg := New(DefaultConfig())
	blocks := []extraction.TextBlock{
		{Page: 2, Text: "Our curriculum spans twelve workshop sessions"},
		{Page: 1, Text: "Acme Foundation", FontSize: 36},
		{Page: 1, Text: "Partnership Proposal for the 2025 school year"},
		{Page: 2, Text: "held weekly at each participating school."},
	}

	sections := seg.ExtractSections(blocks, testMeta())
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}

	// One section per page, in page order regardless of block order.
	if sections[0].Metadata.Page != 1 || sections[1].Metadata.Page != 2 {
		t.Errorf("pages out of order: %d, %d", sections[0].Metadata.Page, sections[1].Metadata.Page)
	}
	if sections[0].Type != section.Cover {
		t.Errorf("page 1 type = %q, want %q", sections[0].Type, section.Cover)
	}
	if sections[1].Type != section.ProgramDetails {
		t.Errorf("page 2 type = %q, want %q", sections[1].Type, section.ProgramDetails)
	}

	// Blocks of a page concatenate in input order.
	if !strings.HasPrefix(sections[1].Content, "Our curriculum") {
		t.Errorf("page 2 content starts with %q", sections[1].Content[:20])
	}

	// Document-level metadata propagates to every section.
	for _, s := range sections {
		if s.Entity != "Acme Foundation" || s.PerformanceScore != 0.9 {
			t.Errorf("metadata not propagated: %+v", s)
		}
		if s.Metadata.FileName != "acme_partnership.pdf" {
			t.Errorf("file name not propagated: %q", s.Metadata.FileName)
		}
		if err := s.Validate(); err != nil {
			t.Errorf("emitted section invalid: %v", err)
		}
	}
}

func TestExtractSectionsDropsNoisePages(t *testing.T) {
	seg := New(DefaultConfig())
	blocks := []extraction.TextBlock{
		{Page: 1, Text: "Our curriculum spans twelve workshop sessions held weekly."},
		{Page: 2, Text: "3"},
		{Page: 3, Text: "---"},
		{Page: 4, Text: "   "},
	}

	sections := seg.ExtractSections(blocks, testMeta())
	if len(sections) != 1 {
		t.Fatalf("got %d sections, want 1 (noise pages dropped)", len(sections))
	}
	if sections[0].Metadata.Page != 1 {
		t.Errorf("surviving page = %d, want 1", sections[0].Metadata.Page)
	}
}

func TestExtractSectionsEmptyInput(t *testing.T) {
	seg := New(DefaultConfig())
	if got := seg.ExtractSections(nil, testMeta()); len(got) != 0 {
		t.Errorf("got %d sections from empty input", len(got))
	}
}

func TestNewFillsDefaults(t *testing.T) {
	seg := New(Config{})
	def := DefaultConfig()
	if seg.cfg.MinSectionChars != def.MinSectionChars {
		t.Errorf("MinSectionChars = %d, want default %d", seg.cfg.MinSectionChars, def.MinSectionChars)
	}
	if seg.cfg.HeadingFontSize != def.HeadingFontSize {
		t.Errorf("HeadingFontSize = %v, want default %v", seg.cfg.HeadingFontSize, def.HeadingFontSize)
	}
}
