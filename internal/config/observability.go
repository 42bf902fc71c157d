package config

import "fmt"

// LogConfig controls the process logger.
type LogConfig struct {
	Level  string `env:"TASKTRACK_LOG_LEVEL" default:"warn" yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `env:"TASKTRACK_LOG_FORMAT" default:"text" yaml:"format" mapstructure:"format"` // text, json
}

// Validate validates the log configuration.
func (c *LogConfig) Validate() error {
	switch c.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown TASKTRACK_LOG_LEVEL: %s", c.Level)
	}
	switch c.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown TASKTRACK_LOG_FORMAT: %s", c.Format)
	}
	return nil
}

// ObservabilityConfig holds OpenTelemetry configuration. Exporter endpoints
// and headers come from the standard OTEL_* variables.
type ObservabilityConfig struct {
	OTelEnabled bool   `env:"TASKTRACK_OTEL_ENABLED" default:"false" yaml:"otel_enabled" mapstructure:"otel_enabled"`
	ServiceName string `env:"TASKTRACK_SERVICE_NAME" default:"tasktrack" yaml:"service_name" mapstructure:"service_name"`
}
