package platform

import (
	"os"

	"golang.org/x/sys/unix"
)

// pipe creates a close-on-exec, non-blocking pipe. Non-blocking descriptors
// are registered with the runtime poller by os.NewFile, so closing the
// controller end unblocks a pending Read. The subordinate's end is switched
// back to blocking mode when os.StartProcess takes its descriptor.
func pipe() (*os.File, *os.File, error) {
	var fds [2]int
	if err := unix.Pipe2(fds[:], unix.O_CLOEXEC|unix.O_NONBLOCK); err != nil {
		return nil, nil, os.NewSyscallError("pipe2", err)
	}

	return os.NewFile(uintptr(fds[0]), "|0"), os.NewFile(uintptr(fds[1]), "|1"), nil
}
