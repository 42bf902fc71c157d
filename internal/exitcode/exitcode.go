// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates bad arguments or a rejected operation
	// (duplicate task, empty selection, index out of range).
	UserError = 1

	// ConfigError indicates an invalid config file or environment.
	ConfigError = 2

	// StorageError indicates the task files could not be read or written.
	StorageError = 3
)
