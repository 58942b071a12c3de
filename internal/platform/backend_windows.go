//go:build windows

package platform

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

type windowsBackend struct{}

// Compile-time verification that windowsBackend implements Backend.
var _ Backend = windowsBackend{}

// Default returns the backend for the build platform.
func Default() Backend {
	return windowsBackend{}
}

func (windowsBackend) Pipe() (*os.File, *os.File, error) {
	return pipe()
}

func (windowsBackend) Start(path string, argv []string, attr *Attr) (*os.Process, error) {
	return startProcess(path, argv, attr)
}

// Terminate has no graceful equivalent for console-less children on
// Windows; it calls TerminateProcess.
func (windowsBackend) Terminate(p *os.Process) error {
	return ignoreDone(p.Kill())
}

func (windowsBackend) Kill(p *os.Process) error {
	return ignoreDone(p.Kill())
}

func (windowsBackend) Exhausted(err error) bool {
	return errors.Is(err, windows.ERROR_TOO_MANY_OPEN_FILES) ||
		errors.Is(err, windows.ERROR_NOT_ENOUGH_MEMORY) ||
		errors.Is(err, windows.ERROR_NO_SYSTEM_RESOURCES)
}
