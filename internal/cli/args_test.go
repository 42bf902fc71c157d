package cli

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/rezkam/tasktrack/internal/exitcode"
)

func TestParsePositions(t *testing.T) {
	got, err := parsePositions([]string{"3", "1"})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 0}, got)

	got, err = parsePositions(nil)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"0", "-1", "x", "1.5"} {
		_, err := parsePositions([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestResolveTasks(t *testing.T) {
	list := []domain.Task{"A", "B", "C"}

	got, err := resolveTasks(list, []string{"3", "1"})
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{"C", "A"}, got)

	_, err = resolveTasks(list, []string{"4"})
	assert.ErrorIs(t, err, domain.ErrIndexOutOfRange)
}

func TestExitCode(t *testing.T) {
	boom := errors.New("boom")

	assert.Equal(t, exitcode.Success, ExitCode(nil))
	assert.Equal(t, exitcode.UserError, ExitCode(boom))
	assert.Equal(t, exitcode.UserError, ExitCode(classify(domain.ErrDuplicatePending)))
	assert.Equal(t, exitcode.StorageError, ExitCode(classify(boom)))
	assert.Equal(t, exitcode.ConfigError, ExitCode(configError{boom}))
}
