// Package channel provides the byte-stream endpoints connecting a controller
// with its subordinate process.
//
// A Pair holds two unidirectional pipes. The controller writes the subordinate's
// standard input through the outbound pipe and reads its standard output from
// the inbound pipe. Every endpoint closes at most once and is tracked by a
// process-wide counter so that tests can assert that no endpoint leaks.
package channel

import (
	stderrors "errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
)

// openEndpoints counts endpoints created and not yet closed.
var openEndpoints atomic.Int64

// OpenEndpoints returns the number of endpoints currently open in this process.
func OpenEndpoints() int64 {
	return openEndpoints.Load()
}

// Endpoint is one end of a pipe. Close is idempotent.
type Endpoint struct {
	f         *os.File
	closeOnce sync.Once
	closeErr  error
}

// NewEndpoint takes ownership of f.
func NewEndpoint(f *os.File) *Endpoint {
	openEndpoints.Add(1)

	return &Endpoint{f: f}
}

// File returns the underlying file. It must only be handed to the spawner.
func (e *Endpoint) File() *os.File {
	return e.f
}

// Read reads from the endpoint.
func (e *Endpoint) Read(p []byte) (int, error) {
	return e.f.Read(p)
}

// Write writes all of p or returns an error.
func (e *Endpoint) Write(p []byte) (int, error) {
	return e.f.Write(p)
}

// Close closes the endpoint. Only the first call has any effect.
func (e *Endpoint) Close() error {
	e.closeOnce.Do(func() {
		e.closeErr = e.f.Close()

		openEndpoints.Add(-1)
	})

	return e.closeErr
}

// PipeFunc creates one pipe and returns its read and write ends.
type PipeFunc func() (r, w *os.File, err error)

// Pipe is a unidirectional byte stream.
type Pipe struct {
	R *Endpoint
	W *Endpoint
}

// Close closes both ends.
func (p *Pipe) Close() error {
	return stderrors.Join(p.R.Close(), p.W.Close())
}

// Pair is the full-duplex channel between controller and subordinate.
type Pair struct {
	// Outbound carries controller writes to the subordinate's stdin.
	Outbound *Pipe
	// Inbound carries the subordinate's stdout to the controller.
	Inbound *Pipe
}

// NewPair creates both pipes with newPipe. If the second pipe cannot be
// created the first is closed before returning.
func NewPair(newPipe PipeFunc) (*Pair, error) {
	outbound, err := newEndpoints(newPipe)
	if err != nil {
		return nil, fmt.Errorf("create outbound pipe: %w", err)
	}

	inbound, err := newEndpoints(newPipe)
	if err != nil {
		_ = outbound.Close()

		return nil, fmt.Errorf("create inbound pipe: %w", err)
	}

	return &Pair{Outbound: outbound, Inbound: inbound}, nil
}

func newEndpoints(newPipe PipeFunc) (*Pipe, error) {
	r, w, err := newPipe()
	if err != nil {
		return nil, err
	}

	return &Pipe{R: NewEndpoint(r), W: NewEndpoint(w)}, nil
}

// SubordinateStdin returns the end the subordinate reads as standard input.
func (p *Pair) SubordinateStdin() *os.File {
	return p.Outbound.R.File()
}

// SubordinateStdout returns the end the subordinate writes as standard output.
func (p *Pair) SubordinateStdout() *os.File {
	return p.Inbound.W.File()
}

// CloseSubordinateEnds closes the ends inherited by the subordinate. Called
// once the subordinate has been started, so only controller ends stay open.
func (p *Pair) CloseSubordinateEnds() error {
	return stderrors.Join(p.Outbound.R.Close(), p.Inbound.W.Close())
}

// Close closes all four ends.
func (p *Pair) Close() error {
	return stderrors.Join(p.Outbound.Close(), p.Inbound.Close())
}
