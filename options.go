package pairedproc

import (
	"log/slog"
	"os"
	"time"

	"github.com/wagiedev/paired-process-go/internal/config"
)

// Options configures how a subordinate is launched and torn down.
type Options = config.Options

// Option configures Options using the functional options pattern.
type Option func(*Options)

// applyOptions applies functional options to an Options struct.
func applyOptions(opts []Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}

	return options
}

// WithLogger sets the logger for debug output.
// If not set, logging is disabled (silent operation).
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}

// WithEnv provides additional environment variables for the subordinate.
// The controller's environment is inherited; these entries override it.
func WithEnv(env map[string]string) Option {
	return func(o *Options) {
		o.Env = env
	}
}

// WithDir sets the working directory for the subordinate.
func WithDir(dir string) Option {
	return func(o *Options) {
		o.Dir = dir
	}
}

// WithStderr redirects the subordinate's standard error to f.
// By default the subordinate inherits the controller's stderr.
func WithStderr(f *os.File) Option {
	return func(o *Options) {
		o.Stderr = f
	}
}

// WithReadBufferSize sets the largest chunk delivered to the listener callback.
func WithReadBufferSize(size int) Option {
	return func(o *Options) {
		o.ReadBufferSize = size
	}
}

// WithStopTimeout bounds how long Destroy waits for the subordinate to exit
// before killing it, and again after the kill.
func WithStopTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.StopTimeout = timeout
	}
}

// WithListenerTimeout bounds how long Destroy waits for the listener to stop
// before forcing its read to return.
func WithListenerTimeout(timeout time.Duration) Option {
	return func(o *Options) {
		o.ListenerTimeout = timeout
	}
}
