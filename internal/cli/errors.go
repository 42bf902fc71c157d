package cli

import (
	"errors"

	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/rezkam/tasktrack/internal/exitcode"
)

// configError marks failures to build the configuration.
type configError struct{ err error }

func (e configError) Error() string { return e.err.Error() }
func (e configError) Unwrap() error { return e.err }

// storageError marks failures reading or writing the task files.
type storageError struct{ err error }

func (e storageError) Error() string { return e.err.Error() }
func (e storageError) Unwrap() error { return e.err }

// classify wraps a service error so ExitCode can tell rejections from failures.
func classify(err error) error {
	if err == nil || domain.IsRejection(err) || errors.Is(err, domain.ErrRecordNotFound) {
		return err
	}
	return storageError{err}
}

// ExitCode maps an error returned by the command tree to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return exitcode.Success
	}
	var cfgErr configError
	if errors.As(err, &cfgErr) {
		return exitcode.ConfigError
	}
	var stErr storageError
	if errors.As(err, &stErr) {
		return exitcode.StorageError
	}
	return exitcode.UserError
}

// message renders err for the terminal.
func message(err error) string {
	switch {
	case errors.Is(err, domain.ErrDuplicateCompleted):
		return "You already completed this task!"
	case errors.Is(err, domain.ErrDuplicatePending):
		return "Task already exists in the pending tasks list."
	case errors.Is(err, domain.ErrNoSelection):
		return "No item selected!"
	default:
		return err.Error()
	}
}
