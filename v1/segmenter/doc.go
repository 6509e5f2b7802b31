// Package segmenter turns per-page extracted text into typed sections.
//
// # Overview
//
// ExtractSections groups text blocks by page, concatenates each page into
// one text, discards pages below a minimum character threshold (noise
// pages: separators, page numbers, image-only pages) and emits exactly one
// section per surviving page.
//
// # Classification
//
// ClassifySectionType is an ordered cascade of independent predicates, each
// short-circuiting the rest:
//
//	 1. cover       - page 1 with a large heading block
//	 2. value prop  - value-proposition phrasing
//	 3. program     - program/training keywords
//	 4. metrics     - metric keywords plus a "<number> students/teachers/
//	                  schools/hours" shaped pattern
//	 5. testimonial - testimonial keywords or quotation marks
//	 6. cta         - call-to-action keywords
//	 7. about       - "about us" style keywords
//	 8. default     - program details
//
// The rules are modeled as an ordered table of (name, predicate, type)
// entries rather than nested conditionals, so every rule is independently
// testable and the evaluation order is explicit. Keyword matching is
// lowercase on both sides. The whole package is pure: identical input
// always yields the same classification.
package segmenter
