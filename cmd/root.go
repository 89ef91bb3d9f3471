package cmd

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"reorgboard/internal"
)

// globalOptions are the flags shared by every command.
type globalOptions struct {
	configPath string
	boardFile  string
	verbose    bool
}

// env is what a command needs after the root has loaded configuration.
type env struct {
	cfg    *internal.Config
	store  *internal.Store
	level  log.Level
	stdout io.Writer
	stderr io.Writer
}

type ctxKey int

const (
	loggerKey ctxKey = iota
	envKey
)

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger set up by the root command, or a
// discarding one.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.New(io.Discard)
}

func envFromContext(ctx context.Context) *env {
	if e, ok := ctx.Value(envKey).(*env); ok {
		return e
	}
	return nil
}

// Execute runs the reorgboard command line.
func Execute(ctx context.Context) error {
	return newRootCmd(os.Stdout, os.Stderr).ExecuteContext(ctx)
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts globalOptions

	root := &cobra.Command{
		Use:           "reorgboard",
		Short:         "A terminal board whose cards are dragged between columns",
		Long:          `reorgboard keeps cards in columns and lets you drag them from one column to another with the mouse. Without a subcommand it opens the board.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := internal.LoadConfig(opts.configPath)
			if err != nil {
				return err
			}
			level, err := cfg.LogLevel()
			if err != nil {
				return err
			}
			if opts.verbose {
				level = log.DebugLevel
			}
			e := &env{
				cfg:    cfg,
				store:  internal.NewStore(internal.BoardFilePath(opts.boardFile, cfg)),
				level:  level,
				stdout: cmd.OutOrStdout(),
				stderr: cmd.ErrOrStderr(),
			}
			ctx := withLogger(cmd.Context(), internal.NewLogger(e.stderr, level))
			ctx = context.WithValue(ctx, envKey, e)
			cmd.SetContext(ctx)
			loggerFromContext(ctx).Debug("board file", "path", e.store.Path())
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context())
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default ~/.config/reorgboard/config.toml)")
	root.PersistentFlags().StringVarP(&opts.boardFile, "file", "f", "", "board file (default ~/reorgboard.jsonl)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newBoardCmd())
	root.AddCommand(newListCmd())
	root.AddCommand(newAddCmd())
	root.AddCommand(newShowCmd())
	root.AddCommand(newHttpdCmd())
	root.AddCommand(newInitConfigCmd(&opts))

	return root
}
