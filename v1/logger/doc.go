// Package logger provides the structured logging used across the engine.
//
// # Overview
//
// It wraps Uber's Zap with a small leveled surface
// (Info/Debug/Warn/Error/Fatal) that takes a message, an optional error and
// optional field maps. Every consuming package declares its own local Logger
// interface with this shape, so packages stay decoupled from the concrete
// wrapper and tests can substitute a no-op implementation.
//
// # Usage
//
//	log := logger.NewLoggerClient(logger.Config{Level: logger.Info, ServiceName: "content-engine"})
//	log.Info("corpus indexed", nil, map[string]interface{}{"documents": 12})
//
// In an Fx application include FXModule and provide a Config.
package logger
