package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points every lookup location at a fresh temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv(EnvConfigPath, "")
	return dir
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "data", AppName), cfg.Storage.Dir)
	assert.Equal(t, "tasks.txt", cfg.Storage.TasksFile)
	assert.Equal(t, "tasks_recycle_bin.txt", cfg.Storage.RecycleFile)
	assert.Equal(t, "user_performance.json", cfg.Storage.PerformanceFile)
	assert.Equal(t, ThemeDark, cfg.Display.Theme)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Observability.OTelEnabled)
	assert.Equal(t, "tasktrack", cfg.Observability.ServiceName)
	assert.Equal(t, "Local", cfg.TimeZone)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, filepath.Join(dir, "config", AppName, "config.yaml"), `
storage:
  data_dir: /srv/tasks
  tasks_file: work_tasks.txt
display:
  theme: light
log:
  level: debug
timezone: UTC
`)
	t.Setenv("TASKTRACK_LOG_LEVEL", "error")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "/srv/tasks", cfg.Storage.Dir)
	assert.Equal(t, "work_tasks.txt", cfg.Storage.TasksFile)
	assert.Equal(t, "tasks_recycle_bin.txt", cfg.Storage.RecycleFile, "keys absent from the file keep defaults")
	assert.Equal(t, ThemeLight, cfg.Display.Theme)
	assert.Equal(t, "error", cfg.Log.Level, "environment wins over file")
	assert.Equal(t, "UTC", cfg.TimeZone)
}

func TestLoad_ExplicitPath(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err, "explicitly named file must exist")

	path := filepath.Join(dir, "custom.yaml")
	writeConfig(t, path, "display:\n  theme: light\n")
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ThemeLight, cfg.Display.Theme)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"theme", "TASKTRACK_THEME", "neon"},
		{"log level", "TASKTRACK_LOG_LEVEL", "loud"},
		{"log format", "TASKTRACK_LOG_FORMAT", "xml"},
		{"time zone", "TASKTRACK_TIMEZONE", "Mars/Olympus"},
		{"file with path", "TASKTRACK_TASKS_FILE", "../tasks.txt"},
		{"clashing files", "TASKTRACK_RECYCLE_FILE", "tasks.txt"},
		{"empty data dir", "TASKTRACK_DATA_DIR", ""},
		{"bad bool", "TASKTRACK_OTEL_ENABLED", "sometimes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load("")
			assert.Error(t, err)
		})
	}
}

func TestConfig_YAML(t *testing.T) {
	isolate(t)
	cfg, err := Load("")
	require.NoError(t, err)

	out, err := cfg.YAML()
	require.NoError(t, err)
	assert.Contains(t, string(out), "theme: dark")
	assert.Contains(t, string(out), "tasks_file: tasks.txt")

	// The rendered config reads back to the same values.
	path := filepath.Join(t.TempDir(), "roundtrip.yaml")
	writeConfig(t, path, string(out))
	again, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
}
