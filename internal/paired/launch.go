package paired

import (
	"github.com/oklog/ulid/v2"
	"github.com/wagiedev/paired-process-go/internal/channel"
	"github.com/wagiedev/paired-process-go/internal/config"
	"github.com/wagiedev/paired-process-go/internal/errors"
	"github.com/wagiedev/paired-process-go/internal/platform"
)

// Launch spawns path with argv, binding the subordinate's standard input and
// output to a fresh channel pair, and returns an Active Process.
//
// argv[0] is conventionally the program name; an empty argv defaults to
// []string{path}. A path without a separator is searched in $PATH.
//
// On failure every endpoint created so far is closed before Launch returns.
// Spawning is never retried.
func Launch(path string, argv []string, opts *config.Options) (*Process, error) {
	const op = "launch"

	o := opts.Resolved()

	if path == "" {
		return nil, errors.New(op, errors.InvalidArgument, errors.ErrEmptyPath)
	}

	id := ulid.Make()
	log := o.Logger.With("component", "paired_process", "id", id.String())

	log.Info("Launching subordinate process", "path", path)

	resolved, err := platform.LookPath(log, path)
	if err != nil {
		log.Error("Subordinate executable not found", "error", err)

		return nil, errors.New(op, errors.SpawnFailed, err)
	}

	pair, err := channel.NewPair(o.Backend.Pipe)
	if err != nil {
		log.Error("Failed to create channel pair", "error", err)

		return nil, errors.New(op, classify(o.Backend, err, errors.ChannelCreationFailed), err)
	}

	if len(argv) == 0 {
		argv = []string{path}
	}

	sub, err := platform.Start(o.Backend, resolved, argv, &platform.Attr{
		Dir:    o.Dir,
		Env:    o.Environment(),
		Stdin:  pair.SubordinateStdin(),
		Stdout: pair.SubordinateStdout(),
		Stderr: o.Stderr,
	})
	if err != nil {
		log.Error("Failed to start subordinate process", "error", err)

		if closeErr := pair.Close(); closeErr != nil {
			log.Warn("Failed to close channel pair", "error", closeErr)
		}

		return nil, errors.New(op, classify(o.Backend, err, errors.SpawnFailed), err)
	}

	// The subordinate holds its own copies now.
	if err := pair.CloseSubordinateEnds(); err != nil {
		log.Warn("Failed to close subordinate-side endpoints", "error", err)
	}

	p := &Process{
		log:      log.With("pid", sub.Pid()),
		opts:     o,
		id:       id,
		sub:      sub,
		outbound: pair.Outbound.W,
		inbound:  pair.Inbound.R,
	}
	p.state.Store(int32(StateActive))

	p.log.Info("Subordinate process started")

	return p, nil
}

// classify maps resource exhaustion to its own code and everything else to
// fallback.
func classify(backend platform.Backend, err error, fallback errors.Code) errors.Code {
	if backend.Exhausted(err) {
		return errors.ResourceExhausted
	}

	return fallback
}
