package vectorstore

import (
	"os"
	"strconv"
	"time"
)

// Config holds connection and behavior settings for the store client.
//
// Example (programmatic):
//
//	cfg := vectorstore.DefaultConfig()
//	cfg.Endpoint = "localhost"
//	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
//
// Example (builder style):
//
//	cfg := vectorstore.FromEndpoint("qdrant.internal").
//	    WithApiKey(os.Getenv("QDRANT_API_KEY")).
//	    WithCollection("partnership_sections", 1536)
type Config struct {
	// Hostname of the Qdrant server, e.g. "localhost".
	Endpoint string `yaml:"endpoint" env:"QDRANT_ENDPOINT"`

	// gRPC port of the Qdrant server. Defaults to 6334.
	Port int `yaml:"port" env:"QDRANT_PORT"`

	// Optional authentication token for secured deployments.
	ApiKey string `yaml:"api_key" env:"QDRANT_API_KEY"`

	// Collection name this client operates on.
	Collection string `yaml:"collection" env:"QDRANT_COLLECTION"`

	// Dimension is the fixed vector size of the collection. Constant for
	// the collection's lifetime and validated on every write and query.
	Dimension int `yaml:"dimension" env:"QDRANT_DIMENSION"`

	// Maximum request duration before timing out.
	Timeout time.Duration `yaml:"timeout" env:"QDRANT_TIMEOUT"`

	// Whether to perform version compatibility checks between client and server.
	CheckCompatibility bool `yaml:"check_compatibility" env:"QDRANT_CHECK_COMPATIBILITY"`
}

// DefaultConfig provides sensible defaults for most use cases.
func DefaultConfig() *Config {
	return &Config{
		Endpoint:           "localhost",
		Port:               6334,
		Collection:         "partnership_sections",
		Dimension:          1536,
		Timeout:            5 * time.Second,
		CheckCompatibility: true,
	}
}

// NewConfig reads from environment variables, falling back to defaults.
func NewConfig() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("QDRANT_ENDPOINT"); v != "" {
		cfg.Endpoint = v
	}
	if v := os.Getenv("QDRANT_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Port = n
		}
	}
	cfg.ApiKey = os.Getenv("QDRANT_API_KEY")
	if v := os.Getenv("QDRANT_COLLECTION"); v != "" {
		cfg.Collection = v
	}
	if v := os.Getenv("QDRANT_DIMENSION"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Dimension = n
		}
	}

	return cfg
}

// FromEndpoint returns a default config pre-filled with a specific endpoint.
func FromEndpoint(host string) *Config {
	cfg := DefaultConfig()
	cfg.Endpoint = host
	return cfg
}

// Builder-style helpers (optional, ergonomic)
func (c *Config) WithApiKey(key string) *Config {
	c.ApiKey = key
	return c
}

func (c *Config) WithCollection(name string, dimension int) *Config {
	c.Collection = name
	c.Dimension = dimension
	return c
}

func (c *Config) WithTimeout(d time.Duration) *Config {
	c.Timeout = d
	return c
}

func (c *Config) WithCompatibilityCheck(enabled bool) *Config {
	c.CheckCompatibility = enabled
	return c
}
