package paired

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/oklog/ulid/v2"
	"github.com/wagiedev/paired-process-go/internal/channel"
	"github.com/wagiedev/paired-process-go/internal/config"
	"github.com/wagiedev/paired-process-go/internal/errors"
	"github.com/wagiedev/paired-process-go/internal/platform"
)

// State is the lifecycle state of a Process.
type State int32

const (
	// StateLaunching is held while endpoints and the subordinate are created.
	StateLaunching State = iota
	// StateActive accepts sends and listener registration.
	StateActive
	// StateTerminating is held while Destroy runs.
	StateTerminating
	// StateTerminated is final; all resources are released.
	StateTerminated
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateLaunching:
		return "launching"
	case StateActive:
		return "active"
	case StateTerminating:
		return "terminating"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("unknown(%d)", int32(s))
	}
}

// Callback receives one chunk read from the subordinate. The slice is owned
// by the callback. The returned error is logged and does not stop the
// listener.
type Callback func(message []byte) error

// closedChan is returned by ListenerDone when no listener was registered.
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)

	return ch
}()

// Process is a subordinate process together with the controller-side
// endpoints and lifecycle state used to talk to it.
//
// Process is owned by the caller that received it from Launch. Destroy must
// not be called from the listener callback: it would wait on itself until
// both listener timeouts expire.
type Process struct {
	log  *slog.Logger
	opts *config.Options
	id   ulid.ULID
	sub  *platform.Subordinate

	outbound *channel.Endpoint
	inbound  *channel.Endpoint

	state atomic.Int32

	// sendMu serializes writes to outbound.
	sendMu sync.Mutex

	// mu guards callback and listenerDone.
	mu           sync.Mutex
	callback     Callback
	listenerDone chan struct{}

	listenerRunning atomic.Bool

	destroyOnce sync.Once
}

// ID returns the instance identifier assigned at launch.
func (p *Process) ID() string {
	return p.id.String()
}

// Pid returns the subordinate's OS process id.
func (p *Process) Pid() int {
	return p.sub.Pid()
}

// State returns the current lifecycle state.
func (p *Process) State() State {
	return State(p.state.Load())
}

// ListenerRunning reports whether the listener goroutine is executing.
func (p *Process) ListenerRunning() bool {
	return p.listenerRunning.Load()
}

// ListenerDone returns a channel closed when the listener has stopped. If no
// listener was registered the returned channel is already closed.
func (p *Process) ListenerDone() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.listenerDone == nil {
		return closedChan
	}

	return p.listenerDone
}

// Exited returns a channel closed once the subordinate has exited.
func (p *Process) Exited() <-chan struct{} {
	return p.sub.Exited()
}

// ExitCode returns the subordinate's exit code, or -1 while it is running or
// if it was stopped by a signal.
func (p *Process) ExitCode() int {
	return p.sub.ExitCode()
}

// Send writes message to the subordinate's standard input. The whole buffer
// must be accepted; a short write is reported as a failure. No delimiter is
// added.
func (p *Process) Send(message []byte) error {
	const op = "send"

	if p == nil {
		return errors.New(op, errors.NotActive, errors.ErrNilProcess)
	}

	if len(message) == 0 {
		return errors.New(op, errors.InvalidArgument, errors.ErrEmptyMessage)
	}

	p.sendMu.Lock()
	defer p.sendMu.Unlock()

	if p.State() != StateActive {
		return errors.New(op, errors.NotActive, nil)
	}

	n, err := p.outbound.Write(message)
	if err != nil {
		p.log.Debug("Failed to write message to subordinate", "error", err, "written", n)

		return errors.New(op, errors.SendFailed, err)
	}

	if n != len(message) {
		return errors.New(op, errors.SendFailed, fmt.Errorf("%w: %d of %d bytes", errors.ErrShortWrite, n, len(message)))
	}

	p.log.Debug("Message sent to subordinate", "data_len", n)

	return nil
}
