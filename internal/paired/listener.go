package paired

import (
	stderrors "errors"
	"io"
	"os"

	"github.com/wagiedev/paired-process-go/internal/errors"
)

// RegisterListener stores cb and starts the listener goroutine. It may
// succeed at most once per Process, and only while the Process is Active.
func (p *Process) RegisterListener(cb Callback) error {
	const op = "register listener"

	if p == nil {
		return errors.New(op, errors.NotActive, errors.ErrNilProcess)
	}

	if cb == nil {
		return errors.New(op, errors.InvalidArgument, errors.ErrNilCallback)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// Checked under mu: Destroy reads listenerDone under the same lock after
	// leaving Active, so it either sees this listener or we see its state.
	if p.State() != StateActive {
		return errors.New(op, errors.NotActive, nil)
	}

	if p.callback != nil {
		return errors.New(op, errors.ListenerCreationFailed, errors.ErrListenerExists)
	}

	p.callback = cb
	p.listenerDone = make(chan struct{})
	p.listenerRunning.Store(true)

	go p.listen(cb, p.listenerDone)

	p.log.Debug("Listener started", "buffer_size", p.opts.ReadBufferSize)

	return nil
}

// listen reads the inbound endpoint until EOF, a read error, or the Process
// leaving Active, delivering each chunk to cb in order.
func (p *Process) listen(cb Callback, done chan struct{}) {
	defer close(done)
	defer p.listenerRunning.Store(false)

	buf := make([]byte, p.opts.ReadBufferSize)
	chunks := 0

	for p.State() == StateActive {
		n, err := p.inbound.Read(buf)
		if n > 0 {
			chunks++

			msg := make([]byte, n)
			copy(msg, buf[:n])

			if cbErr := cb(msg); cbErr != nil {
				p.log.Debug("Listener callback returned error", "error", cbErr, "chunk", chunks)
			}
		}

		if err != nil {
			switch {
			case stderrors.Is(err, io.EOF):
				p.log.Debug("Subordinate closed its output", "chunks", chunks)
			case stderrors.Is(err, os.ErrClosed):
				p.log.Debug("Inbound endpoint closed during read", "chunks", chunks)
			default:
				p.log.Warn("Listener read failed", "error", err, "chunks", chunks)
			}

			return
		}
	}

	p.log.Debug("Listener stopped after leaving active state", "chunks", chunks)
}
