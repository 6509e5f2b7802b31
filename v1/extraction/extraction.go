// Package extraction defines the contract with the external text-extraction
// collaborator. The engine never derives layout itself: blocks arrive in
// approximate reading order from whatever PDF toolchain the host pipeline
// uses, and the segmenter treats them as authoritative.
package extraction

import "context"

// BoundingBox is the position of a text block on its page, in points.
type BoundingBox struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// TextBlock is one extracted run of text with its page position and the
// dominant font size, which the classifier uses to detect cover headings.
type TextBlock struct {
	// Page is the 1-based page number the block belongs to.
	Page int `json:"page"`

	// Text is the extracted content of the block.
	Text string `json:"text"`

	// Bounds is the block position on the page.
	Bounds BoundingBox `json:"boundingBox"`

	// FontSize is the dominant font size of the block in points.
	FontSize float64 `json:"fontSize"`
}

// Extractor is implemented by the host pipeline's PDF extraction service.
type Extractor interface {
	// ExtractTextBlocks returns the text blocks of the document at path,
	// in approximate reading order.
	ExtractTextBlocks(ctx context.Context, path string) ([]TextBlock, error)
}
