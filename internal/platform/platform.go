// Package platform abstracts the OS operations needed to run a subordinate
// process behind a pair of pipes.
//
// A Backend is implemented once per target platform and selected at build
// time by Default. Shared logic never branches on the operating system.
package platform

import (
	"errors"
	"os"
)

// Attr describes how a subordinate is started.
type Attr struct {
	// Dir is the working directory. Empty means the controller's.
	Dir string
	// Env is the environment. Nil means the controller's.
	Env []string
	// Stdin, Stdout and Stderr are inherited by the subordinate.
	Stdin  *os.File
	Stdout *os.File
	Stderr *os.File
}

// Backend is the per-platform capability set.
type Backend interface {
	// Pipe creates one pipe. The ends must not leak into unrelated children
	// and the controller-side end must support Close unblocking a Read.
	Pipe() (r, w *os.File, err error)

	// Start spawns path with argv and the standard streams of attr.
	Start(path string, argv []string, attr *Attr) (*os.Process, error)

	// Terminate asks the process to exit.
	Terminate(p *os.Process) error

	// Kill stops the process without cooperation.
	Kill(p *os.Process) error

	// Exhausted reports whether err means the OS ran out of a resource
	// (descriptors, memory, process slots).
	Exhausted(err error) bool
}

// startProcess is the spawn shared by every backend.
func startProcess(path string, argv []string, attr *Attr) (*os.Process, error) {
	stderr := attr.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	//nolint:gosec // G204: spawning a caller-chosen executable is the purpose of this package
	return os.StartProcess(path, argv, &os.ProcAttr{
		Dir:   attr.Dir,
		Env:   attr.Env,
		Files: []*os.File{attr.Stdin, attr.Stdout, stderr},
	})
}

// ignoreDone returns nil if the process has already exited.
func ignoreDone(err error) error {
	if errors.Is(err, os.ErrProcessDone) {
		return nil
	}

	return err
}
