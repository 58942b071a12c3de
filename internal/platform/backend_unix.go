//go:build unix

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

type unixBackend struct{}

// Compile-time verification that unixBackend implements Backend.
var _ Backend = unixBackend{}

// Default returns the backend for the build platform.
func Default() Backend {
	return unixBackend{}
}

func (unixBackend) Pipe() (*os.File, *os.File, error) {
	return pipe()
}

func (unixBackend) Start(path string, argv []string, attr *Attr) (*os.Process, error) {
	return startProcess(path, argv, attr)
}

func (unixBackend) Terminate(p *os.Process) error {
	return ignoreDone(p.Signal(unix.SIGTERM))
}

func (unixBackend) Kill(p *os.Process) error {
	return ignoreDone(p.Signal(unix.SIGKILL))
}

func (unixBackend) Exhausted(err error) bool {
	return errors.Is(err, unix.EMFILE) ||
		errors.Is(err, unix.ENFILE) ||
		errors.Is(err, unix.ENOMEM) ||
		errors.Is(err, unix.EAGAIN)
}
