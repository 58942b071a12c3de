package platform

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Subordinate is a started child process with its exit tracked by a reaper
// goroutine, so waiting can be bounded. The reaper's Wait also frees the OS
// handle, so there is nothing to release by hand.
type Subordinate struct {
	backend Backend
	proc    *os.Process

	exited   chan struct{}
	exitCode atomic.Int32

	mu      sync.RWMutex
	waitErr error
}

// Start spawns path through backend and begins reaping it.
func Start(backend Backend, path string, argv []string, attr *Attr) (*Subordinate, error) {
	proc, err := backend.Start(path, argv, attr)
	if err != nil {
		return nil, err
	}

	s := &Subordinate{
		backend: backend,
		proc:    proc,
		exited:  make(chan struct{}),
	}
	s.exitCode.Store(-1)

	go s.reap()

	return s, nil
}

func (s *Subordinate) reap() {
	state, err := s.proc.Wait()

	s.mu.Lock()
	s.waitErr = err
	s.mu.Unlock()

	if state != nil {
		s.exitCode.Store(int32(state.ExitCode()))
	}

	close(s.exited)
}

// Pid returns the OS process id.
func (s *Subordinate) Pid() int {
	return s.proc.Pid
}

// Exited returns a channel closed once the process has exited and been reaped.
func (s *Subordinate) Exited() <-chan struct{} {
	return s.exited
}

// ExitCode returns the exit code, or -1 if the process is still running or
// was killed by a signal.
func (s *Subordinate) ExitCode() int {
	return int(s.exitCode.Load())
}

// WaitErr returns the error from reaping, if any.
func (s *Subordinate) WaitErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.waitErr
}

// Terminate asks the process to exit.
func (s *Subordinate) Terminate() error {
	return s.backend.Terminate(s.proc)
}

// Kill stops the process without cooperation.
func (s *Subordinate) Kill() error {
	return s.backend.Kill(s.proc)
}

// WaitTimeout waits for the process to exit. It reports false if timeout
// elapsed or ctx was cancelled first.
func (s *Subordinate) WaitTimeout(ctx context.Context, timeout time.Duration) bool {
	return WaitChan(ctx, s.exited, timeout)
}

// WaitChan waits for done to close, bounded by timeout and ctx.
func WaitChan(ctx context.Context, done <-chan struct{}, timeout time.Duration) bool {
	select {
	case <-done:
		return true
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	case <-ctx.Done():
		return false
	}
}
