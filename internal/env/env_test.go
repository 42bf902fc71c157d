package env

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	Dir     string        `env:"TEST_DATA_DIR" default:"./data"`
	Retries int           `env:"TEST_RETRIES" default:"3"`
	Verbose bool          `env:"TEST_VERBOSE" default:"true"`
	Timeout time.Duration `env:"TEST_TIMEOUT" default:"5s"`
	NoDef   string        `env:"TEST_NO_DEF"`
}

func TestParse(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "/var/lib/tasks")
	t.Setenv("TEST_RETRIES", "9")
	t.Setenv("TEST_VERBOSE", "false")
	t.Setenv("TEST_TIMEOUT", "1m30s")
	t.Setenv("TEST_NO_DEF", "foo")

	var cfg testConfig
	require.NoError(t, Parse(&cfg))

	assert.Equal(t, "/var/lib/tasks", cfg.Dir)
	assert.Equal(t, 9, cfg.Retries)
	assert.False(t, cfg.Verbose)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
	assert.Equal(t, "foo", cfg.NoDef)
}

func TestParse_Defaults(t *testing.T) {
	var cfg testConfig
	require.NoError(t, Parse(&cfg))

	assert.Equal(t, "./data", cfg.Dir)
	assert.Equal(t, 3, cfg.Retries)
	assert.True(t, cfg.Verbose)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Empty(t, cfg.NoDef)
}

func TestParse_EmptyStringRespected(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "")

	var cfg testConfig
	require.NoError(t, Parse(&cfg))

	// Empty strings override the default for string fields.
	assert.Equal(t, "", cfg.Dir)
	assert.Equal(t, 3, cfg.Retries)
}

func TestParse_EmptyStringIntError(t *testing.T) {
	t.Setenv("TEST_RETRIES", "")

	var cfg testConfig
	err := Parse(&cfg)

	var invalid ErrInvalidValue
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "TEST_RETRIES", invalid.EnvVar)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_KeepsExistingValues(t *testing.T) {
	t.Setenv("TEST_RETRIES", "4")

	cfg := testConfig{Dir: "from-file", Retries: 1}
	require.NoError(t, Load(&cfg))

	assert.Equal(t, "from-file", cfg.Dir, "unset variables leave fields alone")
	assert.Equal(t, 4, cfg.Retries)
}

func TestLoad_NotStructPointer(t *testing.T) {
	var cfg testConfig
	err := Load(cfg)

	var notPtr ErrNotStructPointer
	assert.ErrorAs(t, err, &notPtr)
}

var errBadTheme = errors.New("theme must be dark or light")

type ThemeConfig struct {
	Theme string `env:"TEST_THEME" default:"dark"`
}

func (c *ThemeConfig) Validate() error {
	if c.Theme != "dark" && c.Theme != "light" {
		return errBadTheme
	}
	return nil
}

type nestedConfig struct {
	ThemeConfig
	Display ThemeConfig
	Started time.Time
}

func TestParse_NestedValidation(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		var cfg nestedConfig
		require.NoError(t, Parse(&cfg))
		assert.Equal(t, "dark", cfg.Theme)
		assert.Equal(t, "dark", cfg.Display.Theme)
		assert.True(t, cfg.Started.IsZero())
	})

	t.Run("invalid", func(t *testing.T) {
		t.Setenv("TEST_THEME", "neon")

		var cfg nestedConfig
		assert.ErrorIs(t, Parse(&cfg), errBadTheme)
	})
}

func TestApplyDefaults_DoesNotReadEnv(t *testing.T) {
	t.Setenv("TEST_DATA_DIR", "/ignored")

	var cfg testConfig
	require.NoError(t, ApplyDefaults(&cfg))
	assert.Equal(t, "./data", cfg.Dir)
}
