package segmenter

import (
	"sort"
	"strings"
	"time"

	"github.com/partnerforge/ragengine/v1/extraction"
	"github.com/partnerforge/ragengine/v1/section"
)

// DocumentMeta carries the document-level fields every emitted section
// inherits.
type DocumentMeta struct {
	Entity           string
	FileName         string
	Industry         string
	PartnershipType  string
	DocumentDate     time.Time
	PerformanceScore float64
}

// Segmenter groups extracted text blocks into typed sections.
type Segmenter struct {
	cfg Config
}

// New creates a Segmenter. Zero-valued config fields fall back to defaults.
func New(cfg Config) *Segmenter {
	def := DefaultConfig()
	if cfg.MinSectionChars <= 0 {
		cfg.MinSectionChars = def.MinSectionChars
	}
	if cfg.HeadingFontSize <= 0 {
		cfg.HeadingFontSize = def.HeadingFontSize
	}
	return &Segmenter{cfg: cfg}
}

// ExtractSections turns extracted text blocks into sections: one per page
// that survives the noise filter. Blocks arrive in approximate reading
// order from the extraction collaborator and are trusted as-is; the
// segmenter never re-derives layout.
func (s *Segmenter) ExtractSections(blocks []extraction.TextBlock, meta DocumentMeta) []section.Section {
	byPage := make(map[int][]extraction.TextBlock)
	for _, b := range blocks {
		byPage[b.Page] = append(byPage[b.Page], b)
	}

	pages := make([]int, 0, len(byPage))
	for page := range byPage {
		pages = append(pages, page)
	}
	sort.Ints(pages)

	sections := make([]section.Section, 0, len(pages))
	for _, page := range pages {
		pageBlocks := byPage[page]

		parts := make([]string, 0, len(pageBlocks))
		for _, b := range pageBlocks {
			if t := strings.TrimSpace(b.Text); t != "" {
				parts = append(parts, t)
			}
		}
		pageText := strings.Join(parts, "\n")

		// Noise filter: separators, page numbers, image-only pages.
		if len(pageText) < s.cfg.MinSectionChars {
			continue
		}

		sections = append(sections, section.Section{
			Entity:           meta.Entity,
			Type:             s.ClassifySectionType(pageText, page, pageBlocks),
			Content:          pageText,
			DocumentDate:     meta.DocumentDate,
			PerformanceScore: meta.PerformanceScore,
			Metadata: section.Metadata{
				Page:            page,
				FileName:        meta.FileName,
				Industry:        meta.Industry,
				PartnershipType: meta.PartnershipType,
			},
		})
	}

	return sections
}
