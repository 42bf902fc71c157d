package config

import "fmt"

// Theme selects the terminal color palette.
type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

// DisplayConfig holds presentation settings. The engine never reads them.
type DisplayConfig struct {
	Theme Theme `env:"TASKTRACK_THEME" default:"dark" yaml:"theme" mapstructure:"theme"`
}

// Validate validates the display configuration.
func (c *DisplayConfig) Validate() error {
	switch c.Theme {
	case ThemeDark, ThemeLight:
		return nil
	default:
		return fmt.Errorf("unknown TASKTRACK_THEME: %s", c.Theme)
	}
}
