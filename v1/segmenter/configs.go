package segmenter

import (
	"os"
	"strconv"
)

// Config holds the segmentation thresholds.
type Config struct {
	// MinSectionChars is the minimum page-text length. Shorter pages are
	// treated as noise and dropped. The default matches the corpus this
	// engine was tuned on; treat it as a tunable, not a constant.
	MinSectionChars int `yaml:"min_section_chars" env:"SEGMENTER_MIN_SECTION_CHARS"`

	// HeadingFontSize is the font size, in points, above which a block on
	// page 1 counts as a cover heading.
	HeadingFontSize float64 `yaml:"heading_font_size" env:"SEGMENTER_HEADING_FONT_SIZE"`
}

// DefaultConfig provides the thresholds used in production.
func DefaultConfig() Config {
	return Config{
		MinSectionChars: 50,
		HeadingFontSize: 24,
	}
}

// NewConfig builds a Config from environment variables, falling back to
// defaults for anything unset.
func NewConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("SEGMENTER_MIN_SECTION_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MinSectionChars = n
		}
	}
	if v := os.Getenv("SEGMENTER_HEADING_FONT_SIZE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.HeadingFontSize = f
		}
	}
	return cfg
}
