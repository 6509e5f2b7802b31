package tracer

import "os"

// Config controls tracer construction.
type Config struct {
	// ServiceName identifies this service in trace backends.
	ServiceName string `yaml:"service_name" env:"TRACER_SERVICE_NAME"`

	// AppEnv is the deployment environment, e.g. "production".
	AppEnv string `yaml:"app_env" env:"APP_ENV"`

	// EnableExport enables the OTLP HTTP exporter. When false the provider
	// records spans locally only, which keeps tests and offline runs quiet.
	EnableExport bool `yaml:"enable_export" env:"TRACER_ENABLE_EXPORT"`
}

// NewConfig reads tracer settings from environment variables.
func NewConfig() Config {
	name := os.Getenv("TRACER_SERVICE_NAME")
	if name == "" {
		name = "content-engine"
	}
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}
	return Config{
		ServiceName:  name,
		AppEnv:       env,
		EnableExport: os.Getenv("TRACER_ENABLE_EXPORT") == "true",
	}
}
