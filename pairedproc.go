package pairedproc

import (
	"github.com/wagiedev/paired-process-go/internal/paired"
)

// PairedProcess is a subordinate process together with the controller-owned
// pipes and lifecycle state used to communicate with it.
type PairedProcess = paired.Process

// State is the lifecycle state of a PairedProcess.
type State = paired.State

// Lifecycle states.
const (
	StateLaunching   = paired.StateLaunching
	StateActive      = paired.StateActive
	StateTerminating = paired.StateTerminating
	StateTerminated  = paired.StateTerminated
)

// Callback receives each chunk the subordinate writes to its standard
// output. It runs on the listener goroutine, never concurrently with itself.
// The returned error is logged and does not stop the listener.
type Callback = paired.Callback

// Launch spawns executable with argv, its standard input and output bound to
// a fresh pair of pipes, and returns an Active PairedProcess.
//
// argv[0] is conventionally the program name; if argv is empty it defaults to
// []string{executable}. A name without a path separator is searched in $PATH.
//
// Errors carry InvalidArgument (empty executable), ChannelCreationFailed or
// ResourceExhausted (pipes), or SpawnFailed (missing executable, start
// failure). No file descriptors leak on any failure.
func Launch(executable string, argv []string, opts ...Option) (*PairedProcess, error) {
	return paired.Launch(executable, argv, applyOptions(opts))
}
