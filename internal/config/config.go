package config

import (
	"fmt"
	"os"
	"time"

	"github.com/rezkam/tasktrack/internal/env"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points at the config file.
const EnvConfigPath = "TASKTRACK_CONFIG"

// Config holds the application configuration.
//
// Precedence, lowest first: default tags, the YAML config file, TASKTRACK_*
// environment variables. Command-line flags are applied by the caller.
type Config struct {
	Storage       StorageConfig       `yaml:"storage" mapstructure:"storage"`
	Display       DisplayConfig       `yaml:"display" mapstructure:"display"`
	Log           LogConfig           `yaml:"log" mapstructure:"log"`
	Observability ObservabilityConfig `yaml:"observability" mapstructure:"observability"`

	// TimeZone decides which calendar day is "today" for deadlines.
	// "Local" uses the system zone; otherwise an IANA name like "Europe/Stockholm".
	TimeZone string `env:"TASKTRACK_TIMEZONE" default:"Local" yaml:"timezone" mapstructure:"timezone"`
}

// Load builds the configuration. path is the YAML file to read; when empty,
// TASKTRACK_CONFIG is used, then the default location. A missing file is an
// error only when it was named explicitly.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.ApplyDefaults(cfg); err != nil {
		return nil, fmt.Errorf("failed to apply config defaults: %w", err)
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = DefaultDataDir()
	}

	explicit := path != ""
	if !explicit {
		if p, ok := os.LookupEnv(EnvConfigPath); ok && p != "" {
			path, explicit = p, true
		} else {
			path = DefaultConfigPath()
		}
	}
	if err := loadFile(path, cfg); err != nil {
		if explicit || !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// Validate checks cross-field settings. Nested sections validate themselves.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves TimeZone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimeZone == "" || c.TimeZone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return nil, fmt.Errorf("invalid TASKTRACK_TIMEZONE %q: %w", c.TimeZone, err)
	}
	return loc, nil
}

// YAML renders the effective configuration in config file format.
func (c *Config) YAML() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}
