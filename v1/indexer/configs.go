package indexer

import (
	"os"
	"strconv"
	"time"
)

// Config holds the corpus-indexing knobs.
type Config struct {
	// InterDocumentDelay is the pause between documents during a corpus
	// run. It spaces out embedding calls so a large corpus does not burn
	// through the provider quota in one burst.
	InterDocumentDelay time.Duration `yaml:"inter_document_delay" env:"INDEXER_INTER_DOCUMENT_DELAY"`

	// FilePattern is the glob DirectorySource matches source files
	// against, relative to the corpus directory.
	FilePattern string `yaml:"file_pattern" env:"INDEXER_FILE_PATTERN"`
}

// DefaultConfig provides the production defaults.
func DefaultConfig() Config {
	return Config{
		InterDocumentDelay: 1 * time.Second,
		FilePattern:        "*.pdf",
	}
}

// NewConfig builds a Config from environment variables, falling back to
// defaults for anything unset.
func NewConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("INDEXER_INTER_DOCUMENT_DELAY"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms >= 0 {
			cfg.InterDocumentDelay = time.Duration(ms) * time.Millisecond
		}
	}
	if v := os.Getenv("INDEXER_FILE_PATTERN"); v != "" {
		cfg.FilePattern = v
	}
	return cfg
}
