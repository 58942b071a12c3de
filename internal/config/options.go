// Package config provides configuration types for paired processes.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/wagiedev/paired-process-go/internal/platform"
)

const (
	// DefaultReadBufferSize is the largest chunk the listener reads at once.
	DefaultReadBufferSize = 4096

	// DefaultStopTimeout bounds each wait for the subordinate to exit.
	DefaultStopTimeout = 2 * time.Second

	// DefaultListenerTimeout bounds each wait for the listener to stop.
	DefaultListenerTimeout = 2 * time.Second
)

// Options configures how a subordinate is launched and torn down.
type Options struct {
	// Logger is the slog logger for debug output.
	// If nil, logging is disabled (silent operation).
	Logger *slog.Logger

	// Env provides additional environment variables for the subordinate,
	// on top of the controller's environment.
	Env map[string]string

	// Dir sets the working directory of the subordinate.
	// If empty, the controller's working directory is used.
	Dir string

	// Stderr receives the subordinate's standard error.
	// If nil, the subordinate inherits the controller's stderr.
	Stderr *os.File

	// ReadBufferSize is the size of the listener's read buffer.
	// Zero means DefaultReadBufferSize.
	ReadBufferSize int

	// StopTimeout bounds each wait for the subordinate to exit during teardown.
	// Zero means DefaultStopTimeout.
	StopTimeout time.Duration

	// ListenerTimeout bounds each wait for the listener to stop during teardown.
	// Zero means DefaultListenerTimeout.
	ListenerTimeout time.Duration

	// Backend overrides the platform backend. Used by tests to inject faults.
	Backend platform.Backend
}

// Resolved returns a copy of o with every unset field defaulted.
// A nil receiver yields the defaults.
func (o *Options) Resolved() *Options {
	var r Options
	if o != nil {
		r = *o
	}

	if r.Logger == nil {
		r.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	if r.ReadBufferSize <= 0 {
		r.ReadBufferSize = DefaultReadBufferSize
	}

	if r.StopTimeout <= 0 {
		r.StopTimeout = DefaultStopTimeout
	}

	if r.ListenerTimeout <= 0 {
		r.ListenerTimeout = DefaultListenerTimeout
	}

	if r.Backend == nil {
		r.Backend = platform.Default()
	}

	return &r
}

// Environment builds the subordinate's environment. It returns nil (inherit)
// when no extra variables are configured.
func (o *Options) Environment() []string {
	if len(o.Env) == 0 {
		return nil
	}

	// Overridden variables are dropped rather than duplicated: with
	// duplicates, which value the subordinate sees depends on its runtime.
	env := slices.DeleteFunc(os.Environ(), func(kv string) bool {
		key, _, _ := strings.Cut(kv, "=")
		_, overridden := o.Env[key]

		return overridden
	})

	// Sorted so the resulting environment is deterministic.
	for _, key := range slices.Sorted(maps.Keys(o.Env)) {
		env = append(env, fmt.Sprintf("%s=%s", key, o.Env[key]))
	}

	return env
}
