package retriever

import (
	"os"
	"strconv"
)

// Config holds the retrieval knobs.
type Config struct {
	// TopPerType is how many results each section type keeps.
	TopPerType int `yaml:"top_per_type" env:"RETRIEVER_TOP_PER_TYPE"`

	// MinPerformance filters out sections below this performance score.
	// The filter is hard: low scorers are excluded, not demoted.
	MinPerformance float64 `yaml:"min_performance" env:"RETRIEVER_MIN_PERFORMANCE"`

	// MaxSnippetChars caps the recommended snippet length. Clipping
	// happens at a sentence boundary within the cap.
	MaxSnippetChars int `yaml:"max_snippet_chars" env:"RETRIEVER_MAX_SNIPPET_CHARS"`

	// ConfidenceScale multiplies the mean result score into a confidence,
	// capped at 1.0. A tuned heuristic, not a calibrated probability.
	ConfidenceScale float64 `yaml:"confidence_scale" env:"RETRIEVER_CONFIDENCE_SCALE"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		TopPerType:      3,
		MinPerformance:  0.4,
		MaxSnippetChars: 600,
		ConfidenceScale: 1.2,
	}
}

// NewConfig builds a Config from environment variables, falling back to
// defaults for anything unset.
func NewConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("RETRIEVER_TOP_PER_TYPE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.TopPerType = n
		}
	}
	if v := os.Getenv("RETRIEVER_MIN_PERFORMANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f >= 0 {
			cfg.MinPerformance = f
		}
	}
	if v := os.Getenv("RETRIEVER_MAX_SNIPPET_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxSnippetChars = n
		}
	}
	if v := os.Getenv("RETRIEVER_CONFIDENCE_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.ConfidenceScale = f
		}
	}
	return cfg
}
