package metrics

import "os"

// Config controls the metrics registry and HTTP server.
type Config struct {
	// Address the /metrics HTTP server listens on, e.g. ":9090".
	Address string `yaml:"address" env:"METRICS_ADDRESS"`

	// ServiceName is applied to every metric as a constant "service" label.
	ServiceName string `yaml:"service_name" env:"METRICS_SERVICE_NAME"`

	// EnableDefaultCollectors registers the Go, process and build-info
	// collectors in addition to the engine metrics.
	EnableDefaultCollectors bool `yaml:"enable_default_collectors" env:"METRICS_DEFAULT_COLLECTORS"`
}

// NewConfig reads metrics settings from environment variables.
func NewConfig() Config {
	addr := os.Getenv("METRICS_ADDRESS")
	if addr == "" {
		addr = ":9090"
	}
	name := os.Getenv("METRICS_SERVICE_NAME")
	if name == "" {
		name = "content-engine"
	}
	return Config{
		Address:                 addr,
		ServiceName:             name,
		EnableDefaultCollectors: os.Getenv("METRICS_DEFAULT_COLLECTORS") != "false",
	}
}
