package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-stdx/trash/v2"
)

func main() {
	err := newRootCmd().ExecuteContext(context.Background())
	trash.Close()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		verbose      bool
		fallbackOnly bool
	)

	cmd := &cobra.Command{
		Use:           "trash [flags] PATH...",
		Short:         "Move files and directories to the trash",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(cmd.ErrOrStderr(), verbose)

			move := func(ctx context.Context, path string) error {
				if !trash.MoveContext(ctx, path) {
					return fmt.Errorf("could not move to trash")
				}
				return nil
			}
			if fallbackOnly {
				move = trash.NewFreedesktop().Trash
			}

			var failed int
			for _, path := range args {
				if err := move(cmd.Context(), path); err != nil {
					failed++
					reportFailure(cmd.ErrOrStderr(), path, err)
				}
			}
			if failed > 0 {
				err := fmt.Errorf("%d of %d paths were not moved to the trash", failed, len(args))
				fmt.Fprintln(cmd.ErrOrStderr(), "trash:", err)
				return err
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	cmd.Flags().BoolVar(&fallbackOnly, "fallback-only", false, "write the FreeDesktop.org trash directly, skipping the desktop portal")
	return cmd
}

func setupLogging(w io.Writer, verbose bool) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "trash",
	})
	logger.SetLevel(log.WarnLevel)
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
	slog.SetDefault(slog.New(logger))
}

// reportFailure prints err as is; coded errors already carry their code.
func reportFailure(w io.Writer, path string, err error) {
	fmt.Fprintf(w, "trash: %s: %v\n", path, err)
}
