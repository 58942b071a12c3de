// Command echochild is the reference subordinate for paired processes. It
// answers line requests on stdin with replies on stdout and writes its
// diagnostics to stderr.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wagiedev/paired-process-go/internal/echochild"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:           "echochild",
		Short:         "Reply to HOLA, PING and SALIR on stdin; echo anything else",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelWarn
			if verbose {
				level = slog.LevelDebug
			}

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})).
				With("pid", os.Getpid())

			log.Info("Subordinate started")

			return echochild.Serve(log, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log each request and reply to stderr")

	return cmd
}
