package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"reorgboard/internal"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "board",
		Aliases: []string{"b"},
		Short:   "Open the board and drag cards with the mouse",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd.Context())
		},
	}
}

// runBoard owns the terminal while it runs, so it logs to a file instead of
// stderr.
func runBoard(ctx context.Context) error {
	e := envFromContext(ctx)

	path := e.cfg.Log.File
	if path == "" {
		path = internal.DefaultLogFilePath()
	}
	logFile, err := internal.OpenLogFile(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	logger := internal.NewLogger(logFile, e.level)

	app, err := internal.NewApp(e.cfg, e.store, logger)
	if err != nil {
		return err
	}
	logger.Info("board started", "file", e.store.Path())
	return internal.RunApp(ctx, app)
}
