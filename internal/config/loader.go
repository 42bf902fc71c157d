package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// AppName names the per-user config and data directories.
const AppName = "tasktrack"

// loadFile merges the YAML file at path into cfg. Keys absent from the file
// leave cfg untouched.
func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}

	return v.Unmarshal(cfg)
}

// DefaultConfigPath returns the config file location.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigPath() string {
	return filepath.Join(xdgDir("XDG_CONFIG_HOME", ".config"), "config.yaml")
}

// DefaultDataDir returns the directory holding the task files.
// Uses XDG_DATA_HOME if set, otherwise $HOME/.local/share.
func DefaultDataDir() string {
	return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func xdgDir(envVar, homeRel string) string {
	if base := os.Getenv(envVar); base != "" {
		return filepath.Join(base, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fall back to the working directory when home can't be determined.
		return AppName
	}
	return filepath.Join(home, homeRel, AppName)
}
