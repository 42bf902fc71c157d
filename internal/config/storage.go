package config

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrDataDirRequired is returned when no data directory is configured.
var ErrDataDirRequired = errors.New("TASKTRACK_DATA_DIR is required")

// StorageConfig locates the three task files.
type StorageConfig struct {
	// Dir holds every file. Defaults to $XDG_DATA_HOME/tasktrack.
	Dir string `env:"TASKTRACK_DATA_DIR" yaml:"data_dir" mapstructure:"data_dir"`

	TasksFile       string `env:"TASKTRACK_TASKS_FILE" default:"tasks.txt" yaml:"tasks_file" mapstructure:"tasks_file"`
	RecycleFile     string `env:"TASKTRACK_RECYCLE_FILE" default:"tasks_recycle_bin.txt" yaml:"recycle_file" mapstructure:"recycle_file"`
	PerformanceFile string `env:"TASKTRACK_PERFORMANCE_FILE" default:"user_performance.json" yaml:"performance_file" mapstructure:"performance_file"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	if c.Dir == "" {
		return ErrDataDirRequired
	}

	seen := make(map[string]string, 3)
	for _, f := range []struct{ name, value string }{
		{"tasks_file", c.TasksFile},
		{"recycle_file", c.RecycleFile},
		{"performance_file", c.PerformanceFile},
	} {
		if f.value == "" || f.value != filepath.Base(f.value) {
			return fmt.Errorf("storage %s must be a plain file name, got %q", f.name, f.value)
		}
		if other, dup := seen[f.value]; dup {
			return fmt.Errorf("storage %s and %s both use %q", other, f.name, f.value)
		}
		seen[f.value] = f.name
	}
	return nil
}
