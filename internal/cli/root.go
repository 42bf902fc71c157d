// Package cli implements the tasktrack command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezkam/tasktrack/internal/application/tracker"
	"github.com/rezkam/tasktrack/internal/config"
	"github.com/rezkam/tasktrack/internal/domain"
	"github.com/rezkam/tasktrack/internal/eventbus"
	"github.com/rezkam/tasktrack/internal/observability"
	"github.com/rezkam/tasktrack/internal/storage/fs"
)

// Options tunes how the command tree is wired. Zero values are production defaults.
type Options struct {
	Version string
	Out     io.Writer
	Err     io.Writer

	// LogOutput overrides where the local logger writes (default: Err).
	LogOutput io.Writer

	// Service config hooks, used by tests to pin the clock.
	ServiceConfig tracker.Config
}

func (o Options) withDefaults() Options {
	if o.Out == nil {
		o.Out = os.Stdout
	}
	if o.Err == nil {
		o.Err = os.Stderr
	}
	return o
}

type flags struct {
	configPath string
	dataDir    string
	theme      string
	verbose    bool
}

// app holds the dependencies built once the config is known.
type app struct {
	opts  Options
	flags flags

	cfg    *config.Config
	svc    *tracker.Service
	bus    *eventbus.Bus
	styles styles
	tel    *observability.Providers

	// set when a completion emptied the pending list
	celebrate bool
}

// newRootCommand builds the command tree around a fresh app.
func newRootCommand(opts Options) (*cobra.Command, *app) {
	opts = opts.withDefaults()
	a := &app{opts: opts}

	root := &cobra.Command{
		Use:           "tasktrack",
		Short:         "Track pending, completed and recycled tasks",
		Version:       opts.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd.Context())
		},
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a.celebrate {
				fmt.Fprintln(cmd.OutOrStdout(), a.styles.success.Render("You've completed all tasks!"))
			}
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(cmd)
		},
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)

	pf := root.PersistentFlags()
	pf.StringVar(&a.flags.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/tasktrack/config.yaml)")
	pf.StringVar(&a.flags.dataDir, "data-dir", "", "directory holding the task files")
	pf.StringVar(&a.flags.theme, "theme", "", "color theme: dark or light")
	pf.BoolVarP(&a.flags.verbose, "verbose", "v", false, "log debug output")

	root.AddCommand(
		a.addCommand(),
		a.doneCommand(),
		a.undoCommand(),
		a.rmCommand(),
		a.clearCommand(),
		a.restoreCommand(),
		a.purgeCommand(),
		a.listCommand(),
		a.binCommand(),
		a.statsCommand(),
		a.perfCommand(),
		a.configCommand(),
	)
	return root, a
}

// Execute runs the command tree with args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	root, a := newRootCommand(opts)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	a.shutdown(ctx)
	if err != nil {
		fmt.Fprintln(opts.Err, "error:", message(err))
	}
	return ExitCode(err)
}

func (a *app) setup(ctx context.Context) error {
	cfg, err := config.Load(a.flags.configPath)
	if err != nil {
		return configError{err}
	}
	if a.flags.dataDir != "" {
		cfg.Storage.Dir = a.flags.dataDir
	}
	if a.flags.theme != "" {
		cfg.Display.Theme = config.Theme(a.flags.theme)
	}
	if a.flags.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Storage.Validate(); err != nil {
		return configError{err}
	}
	if err := cfg.Display.Validate(); err != nil {
		return configError{err}
	}
	loc, err := cfg.Location()
	if err != nil {
		return configError{err}
	}
	level, err := observability.ParseLevel(cfg.Log.Level)
	if err != nil {
		return configError{err}
	}
	a.cfg = cfg

	logOut := a.opts.LogOutput
	if logOut == nil {
		logOut = a.opts.Err
	}
	tel, err := observability.Setup(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
		Level:       level,
		JSON:        cfg.Log.Format == "json",
		Output:      logOut,
	})
	if err != nil {
		return configError{fmt.Errorf("failed to set up telemetry: %w", err)}
	}
	a.tel = tel
	logger := tel.Logger

	store, err := fs.NewStore(fs.Config{
		Dir:             cfg.Storage.Dir,
		TasksFile:       cfg.Storage.TasksFile,
		RecycleFile:     cfg.Storage.RecycleFile,
		PerformanceFile: cfg.Storage.PerformanceFile,
		Logger:          logger,
	})
	if err != nil {
		return storageError{err}
	}

	a.bus = eventbus.New(logger)
	a.styles = newStyles(cfg.Display.Theme, a.opts.Out)

	scfg := a.opts.ServiceConfig
	scfg.Location = loc
	scfg.Logger = logger
	scfg.TracerProvider = tel.Tracer
	scfg.MeterProvider = tel.Meter
	svc, err := tracker.NewService(store, a.bus, scfg)
	if err != nil {
		return configError{err}
	}
	a.svc = svc

	a.bus.Subscribe(domain.EventAllTasksCompleted, func(context.Context, domain.Event) {
		a.celebrate = true
	})

	if err := svc.Load(ctx); err != nil {
		return storageError{err}
	}
	return nil
}

// shutdown flushes telemetry. It runs even when the command failed.
func (a *app) shutdown(ctx context.Context) {
	if a.tel == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := a.tel.Shutdown(ctx); err != nil {
		a.tel.Logger.Warn("telemetry shutdown failed", slog.Any("error", err))
	}
}
