package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	pairedproc "github.com/wagiedev/paired-process-go"
)

type runFlags struct {
	stopTimeout     time.Duration
	listenerTimeout time.Duration
	bufferSize      int
	linger          time.Duration
	verbose         bool
}

func newRunCommand(configFlag *string) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run [flags] -- <executable> [args...]",
		Short: "Launch a subordinate and relay lines between it and this terminal",
		Long: "Launch <executable> with its stdin and stdout connected to pairctl.\n" +
			"Each line read from pairctl's stdin is sent to the subordinate, and every\n" +
			"chunk the subordinate writes is printed to stdout. The subordinate is\n" +
			"destroyed on EOF, on interrupt, or when it exits by itself.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			explicit := cmd.Flags().Changed("config")

			cfg, err := loadConfig(*configFlag, explicit)
			if err != nil {
				return err
			}

			s, err := cfg.resolve()
			if err != nil {
				return err
			}

			flags.apply(cmd, s)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: s.logLevel}))

			return relay(ctx, log, s, args, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().DurationVar(&flags.stopTimeout, "stop-timeout", 0, "Wait for the subordinate to exit before killing it")
	cmd.Flags().DurationVar(&flags.listenerTimeout, "listener-timeout", 0, "Wait for the listener to stop before forcing it")
	cmd.Flags().IntVar(&flags.bufferSize, "buffer-size", 0, "Largest chunk read from the subordinate at once")
	cmd.Flags().DurationVar(&flags.linger, "linger", defaultLinger, "Wait after end of input before destroying the subordinate")
	cmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable debug logging")

	return cmd
}

// apply overrides configuration values with flags set on the command line.
func (f *runFlags) apply(cmd *cobra.Command, s *settings) {
	if cmd.Flags().Changed("stop-timeout") {
		s.stopTimeout = f.stopTimeout
	}

	if cmd.Flags().Changed("listener-timeout") {
		s.listenerTimeout = f.listenerTimeout
	}

	if cmd.Flags().Changed("buffer-size") {
		s.readBufferSize = f.bufferSize
	}

	if cmd.Flags().Changed("linger") || s.linger == 0 {
		s.linger = f.linger
	}

	if f.verbose {
		s.logLevel = slog.LevelDebug
	}
}

// relay runs one paired-process session until input ends, ctx is cancelled
// or the subordinate exits.
func relay(ctx context.Context, log *slog.Logger, s *settings, args []string, in io.Reader, out io.Writer) error {
	pp, err := pairedproc.Launch(args[0], args, s.options(log)...)
	if err != nil {
		return err
	}

	defer func() {
		_ = pp.Destroy(context.WithoutCancel(ctx))
	}()

	var outMu sync.Mutex

	err = pp.RegisterListener(func(msg []byte) error {
		outMu.Lock()
		defer outMu.Unlock()

		_, err := out.Write(msg)

		return err
	})
	if err != nil {
		return err
	}

	lines := make(chan []byte)
	inputDone := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			line := append([]byte(scanner.Text()), '\n')

			select {
			case lines <- line:
			case <-ctx.Done():
				return
			case <-pp.Exited():
				return
			}
		}

		inputDone <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			log.Info("Interrupted, destroying subordinate")

			return nil

		case <-pp.Exited():
			log.Info("Subordinate exited", "exit_code", pp.ExitCode())
			drain(pp)

			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-inputDone:
					if err != nil {
						return fmt.Errorf("read input: %w", err)
					}
				default:
				}

				log.Info("End of input", "linger", s.linger)

				// Give the subordinate a chance to answer the last lines.
				select {
				case <-pp.Exited():
					drain(pp)
				case <-ctx.Done():
				case <-time.After(s.linger):
				}

				return nil
			}

			if err := pp.Send(line); err != nil {
				return err
			}
		}
	}
}

// drain lets the listener print what an exited subordinate wrote last. A
// grandchild holding the output open would block EOF, hence the bound.
func drain(pp *pairedproc.PairedProcess) {
	select {
	case <-pp.ListenerDone():
	case <-time.After(drainTimeout):
	}
}
