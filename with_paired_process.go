package pairedproc

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// WithPairedProcess manages a paired process lifecycle with automatic cleanup.
//
// This helper launches executable with argv, executes the callback function,
// and ensures the process is destroyed when done. The callback's error is
// returned to the caller.
//
// Example usage:
//
//	err := pairedproc.WithPairedProcess(ctx, "./echochild", nil,
//	    func(pp *pairedproc.PairedProcess) error {
//	        if err := pp.RegisterListener(func(msg []byte) error {
//	            fmt.Printf("%s", msg)
//	            return nil
//	        }); err != nil {
//	            return err
//	        }
//	        return pp.Send([]byte("PING\n"))
//	    },
//	    pairedproc.WithLogger(log),
//	)
func WithPairedProcess(
	ctx context.Context,
	executable string,
	argv []string,
	fn func(*PairedProcess) error,
	opts ...Option,
) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	pp, err := Launch(executable, argv, opts...)
	if err != nil {
		return fmt.Errorf("failed to launch paired process: %w", err)
	}

	defer func() {
		// Destroy only fails for a nil process.
		_ = pp.Destroy(context.WithoutCancel(ctx))
	}()

	return fn(pp)
}

// DestroyAll tears down every given paired process concurrently and waits for
// all of them. It returns the first error, which can only come from a nil
// entry.
func DestroyAll(ctx context.Context, pps ...*PairedProcess) error {
	var g errgroup.Group

	for _, pp := range pps {
		g.Go(func() error {
			return pp.Destroy(ctx)
		})
	}

	return g.Wait()
}
