package observability

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	l, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, l)

	l, err = ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, l)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewLocalLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLocalLogger(Config{Level: slog.LevelWarn, JSON: true, Output: &buf})

	logger.Info("hidden")
	logger.Warn("shown", "task", "BUY MILK")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"task":"BUY MILK"`)
}

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	p, err := Setup(ctx, Config{Output: &buf})
	require.NoError(t, err)
	require.NotNil(t, p.Logger)

	p.Logger.Info("local")
	assert.Contains(t, buf.String(), "msg=local")

	_, span := p.Tracer.Tracer("test").Start(ctx, "noop")
	span.End()

	assert.NoError(t, p.Shutdown(ctx))
}
