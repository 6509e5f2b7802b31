package logger

import "os"

// Log levels accepted by Config.Level.
const (
	Debug   = "debug"
	Info    = "info"
	Warning = "warning"
	Error   = "error"
)

// Config controls logger construction.
type Config struct {
	// Level is the minimum level emitted; anything else maps to info.
	Level string `yaml:"level" env:"LOG_LEVEL"`

	// ServiceName is attached to every entry as the "service" field.
	ServiceName string `yaml:"service_name" env:"LOG_SERVICE_NAME"`
}

// NewConfig reads logger settings from environment variables.
func NewConfig() Config {
	name := os.Getenv("LOG_SERVICE_NAME")
	if name == "" {
		name = "content-engine"
	}
	return Config{
		Level:       os.Getenv("LOG_LEVEL"),
		ServiceName: name,
	}
}
