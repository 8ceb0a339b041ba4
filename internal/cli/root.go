package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/idilsaglam/compras/internal/config"
	"github.com/idilsaglam/compras/internal/logger"
	"github.com/idilsaglam/compras/internal/shopping"
	"github.com/idilsaglam/compras/internal/store/sqlitestore"
	"github.com/idilsaglam/compras/internal/tui"
	"github.com/idilsaglam/compras/internal/ui"
)

// Options tune behavior from root flags.
type Options struct {
	DBPath  string
	Theme   string
	Group   bool // ls grouped by pending/done
	Verbose bool
}

// env is what PersistentPreRunE wires up for the subcommands.
type env struct {
	cfg     *config.Config
	log     *logger.Logger
	logFile *os.File
	store   *sqlitestore.Store
	svc     *shopping.Service
}

func (e *env) close() error {
	var errs []error
	if e.store != nil {
		errs = append(errs, e.store.Close())
		e.store = nil
	}
	if e.logFile != nil {
		errs = append(errs, e.logFile.Close())
		e.logFile = nil
	}
	return errors.Join(errs...)
}

// Execute runs the CLI and returns an exit code (0 ok, 1 error, 2 usage or
// not found).
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root, e := newRoot()
	defer e.close()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var ue *usageError
	var nf *notFoundError
	switch {
	case errors.As(err, &ue):
		ui.Fail(stderr, ue.msg)
		return 2
	case errors.As(err, &nf):
		ui.Fail(stderr, nf.Error())
		ui.Hint(stderr, "run `compras ls` to see valid ids")
		return 2
	}
	ui.Fail(stderr, err.Error())
	return 1
}

// newRoot builds the compras command tree. Running it without a subcommand
// opens the interactive UI.
func newRoot() (*cobra.Command, *env) {
	opts := &Options{}
	e := &env{}

	cmd := &cobra.Command{
		Use:   "compras",
		Short: "compras - a tiny shopping list",
		Long:  "A shopping list kept in a local SQLite file, with an interactive two-tab UI.",
		Args:  usageArgs(cobra.NoArgs, "usage: compras [command]"),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return e.open(cmd.Context(), opts)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return e.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(cmd.Context(), e)
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{msg: err.Error()}
	})

	cmd.PersistentFlags().StringVar(&opts.DBPath, "db", "", "database file (default $COMPRAS_DB_PATH or the user config dir)")
	cmd.PersistentFlags().StringVar(&opts.Theme, "theme", "", "classic | mono (default $COMPRAS_THEME)")
	cmd.PersistentFlags().BoolVar(&opts.Group, "group", false, "group ls output by pending/done")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "debug logging")

	cmd.AddCommand(newUICommand(e))
	cmd.AddCommand(newListCommand(e, opts))
	cmd.AddCommand(newAddCommand(e))
	cmd.AddCommand(newDoneCommand(e))
	cmd.AddCommand(newRemoveCommand(e))
	return cmd, e
}

func (e *env) open(ctx context.Context, opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if opts.DBPath != "" {
		cfg.SetDBPath(opts.DBPath)
	}
	if opts.Theme != "" {
		cfg.Theme = opts.Theme
	}
	ui.SetTheme(cfg.Theme)

	if err := cfg.EnsureDirs(); err != nil {
		return err
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	e.logFile = f

	level := logger.ParseLevel(cfg.LogLevel)
	if opts.Verbose {
		level = zerolog.DebugLevel
	}
	e.cfg = cfg
	e.log = logger.New(logger.Options{Level: level, Format: cfg.LogFormat, Output: f})

	s, err := sqlitestore.Open(ctx, cfg.DBPath)
	if err != nil {
		e.log.Error(ctx, "failed to open store", err)
		e.close()
		return err
	}
	e.store = s
	e.svc = shopping.NewService(s, e.log)
	e.log.Info(e.log.WithField(ctx, "db", cfg.DBPath), "store opened")
	return nil
}

func runUI(ctx context.Context, e *env) error {
	if err := tui.Run(ctx, e.svc); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
