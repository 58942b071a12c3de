package paired

import (
	"context"

	"github.com/wagiedev/paired-process-go/internal/errors"
	"github.com/wagiedev/paired-process-go/internal/platform"
)

// Destroy shuts the Process down and releases every resource it owns.
//
// The sequence is: leave Active, close the outbound endpoint (EOF for the
// subordinate), request termination, wait for exit (escalating to a kill
// after StopTimeout), join the listener, close the inbound endpoint, and
// mark the Process Terminated.
//
// Destroy always drives the Process to Terminated and returns nil; a
// subordinate that had to be killed is logged, not reported. ctx shortens
// the waits for the subordinate but not the listener join. Only a nil
// Process yields an error. Calls after the first are no-ops.
func (p *Process) Destroy(ctx context.Context) error {
	if p == nil {
		return errors.New("destroy", errors.NotActive, errors.ErrNilProcess)
	}

	p.destroyOnce.Do(func() {
		p.teardown(ctx)
	})

	return nil
}

func (p *Process) teardown(ctx context.Context) {
	p.state.Store(int32(StateTerminating))
	p.log.Info("Destroying paired process")

	if err := p.outbound.Close(); err != nil {
		p.log.Debug("Failed to close outbound endpoint", "error", err)
	}

	p.stopSubordinate(ctx)
	p.joinListener()

	if err := p.inbound.Close(); err != nil {
		p.log.Debug("Failed to close inbound endpoint", "error", err)
	}

	p.state.Store(int32(StateTerminated))
	p.log.Info("Paired process terminated", "exit_code", p.sub.ExitCode())
}

// stopSubordinate requests termination and waits, killing the subordinate
// if it outlives StopTimeout.
func (p *Process) stopSubordinate(ctx context.Context) {
	select {
	case <-p.sub.Exited():
		p.log.Debug("Subordinate already exited")

		return
	default:
	}

	if err := p.sub.Terminate(); err != nil {
		p.log.Debug("Failed to signal subordinate", "error", err)
	}

	if p.sub.WaitTimeout(ctx, p.opts.StopTimeout) {
		return
	}

	p.log.Warn("Subordinate did not exit after termination request, killing",
		"timeout", p.opts.StopTimeout)

	if err := p.sub.Kill(); err != nil {
		p.log.Warn("Failed to kill subordinate", "error", err)
	}

	if !p.sub.WaitTimeout(ctx, p.opts.StopTimeout) {
		p.log.Warn("Subordinate not reaped after kill, leaving it to the reaper")
	}
}

// joinListener waits for the listener to stop. If it is still blocked after
// ListenerTimeout (a grandchild may hold the subordinate's stdout open) the
// inbound endpoint is closed to unblock the read and the wait is repeated.
func (p *Process) joinListener() {
	p.mu.Lock()
	done := p.listenerDone
	p.mu.Unlock()

	if done == nil {
		return
	}

	timeout := p.opts.ListenerTimeout

	if platform.WaitChan(context.Background(), done, timeout) {
		return
	}

	p.log.Warn("Listener still running, closing inbound endpoint", "timeout", timeout)

	if err := p.inbound.Close(); err != nil {
		p.log.Debug("Failed to close inbound endpoint", "error", err)
	}

	if !platform.WaitChan(context.Background(), done, timeout) {
		// Only a callback that never returns gets here.
		p.log.Warn("Listener did not stop; its callback may still run after Destroy returns")
	}
}
