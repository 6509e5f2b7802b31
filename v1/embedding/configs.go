package embedding

import (
	"fmt"
	"os"
	"strconv"
)

// EMBEDDING_ENDPOINT must point to the root of the OpenAI-compatible
// inference service (no /embeddings appended). The provider appends paths
// itself, so callers only supply the host base URL.

// Config holds connection and behavior settings for the embedding client.
type Config struct {
	// Endpoint is the base URL of the inference API.
	Endpoint string `yaml:"endpoint" env:"EMBEDDING_ENDPOINT"`

	// APIKey authenticates requests. Required.
	APIKey string `yaml:"api_key" env:"EMBEDDING_API_KEY"`

	// Model is the embedding model identifier.
	Model string `yaml:"model" env:"EMBEDDING_MODEL"`

	// Dimension is the vector size the model produces. It must match the
	// collection dimension; responses with a different size are rejected.
	Dimension int `yaml:"dimension" env:"EMBEDDING_DIMENSION"`

	// MaxInputChars is the provider's maximum input length. Longer texts
	// are truncated before the request is sent.
	MaxInputChars int `yaml:"max_input_chars" env:"EMBEDDING_MAX_INPUT_CHARS"`

	// BatchSize is the maximum number of texts per provider request.
	BatchSize int `yaml:"batch_size" env:"EMBEDDING_BATCH_SIZE"`

	// RequestsPerMinute is the provider's published rate ceiling. Chunked
	// batch requests are paced to stay under it.
	RequestsPerMinute int `yaml:"requests_per_minute" env:"EMBEDDING_REQUESTS_PER_MINUTE"`

	// CostPerMillionTokens is used for cost accounting, in USD.
	CostPerMillionTokens float64 `yaml:"cost_per_million_tokens" env:"EMBEDDING_COST_PER_MILLION_TOKENS"`

	// HTTPTimeoutS is the HTTP timeout in seconds (default 30).
	HTTPTimeoutS int `yaml:"http_timeout_seconds" env:"EMBEDDING_HTTP_TIMEOUT_SECONDS"`
}

// DefaultConfig provides sensible defaults for most deployments.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:             "https://api.openai.com/v1",
		Model:                "text-embedding-3-small",
		Dimension:            1536,
		MaxInputChars:        8000,
		BatchSize:            100,
		RequestsPerMinute:    60,
		CostPerMillionTokens: 0.02,
		HTTPTimeoutS:         30,
	}
}

// NewConfig reads from environment variables, falling back to defaults.
func NewConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("EMBEDDING_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	cfg.APIKey = os.Getenv("EMBEDDING_API_KEY")
	if v := os.Getenv("EMBEDDING_MODEL"); v != "" {
		cfg.Model = v
	}
	if n := envInt("EMBEDDING_DIMENSION"); n > 0 {
		cfg.Dimension = n
	}
	if n := envInt("EMBEDDING_MAX_INPUT_CHARS"); n > 0 {
		cfg.MaxInputChars = n
	}
	if n := envInt("EMBEDDING_BATCH_SIZE"); n > 0 {
		cfg.BatchSize = n
	}
	if n := envInt("EMBEDDING_REQUESTS_PER_MINUTE"); n > 0 {
		cfg.RequestsPerMinute = n
	}
	if n := envInt("EMBEDDING_HTTP_TIMEOUT_SECONDS"); n > 0 {
		cfg.HTTPTimeoutS = n
	}

	return cfg
}

// Validate ensures required fields are present.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_ENDPOINT: %w", ErrMissingCredentials)
	}
	if c.APIKey == "" {
		return fmt.Errorf("embedding: missing EMBEDDING_API_KEY: %w", ErrMissingCredentials)
	}
	if c.Dimension <= 0 {
		return fmt.Errorf("embedding: dimension must be positive")
	}
	return nil
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithAPIKey(key string) *Config {
	c.APIKey = key
	return c
}

func (c *Config) WithModel(model string) *Config {
	c.Model = model
	return c
}

func (c *Config) WithDimension(d int) *Config {
	c.Dimension = d
	return c
}

func (c *Config) WithRequestsPerMinute(rpm int) *Config {
	c.RequestsPerMinute = rpm
	return c
}

func envInt(key string) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}
