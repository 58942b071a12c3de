// Package pairedproc spawns a subordinate process and exchanges byte messages
// with it over its standard input and output.
//
// A controller launches the subordinate, optionally registers a listener
// callback that receives everything the subordinate writes, sends messages,
// and finally destroys the pair:
//
//	pp, err := pairedproc.Launch("./echochild", []string{"echochild"},
//	    pairedproc.WithLogger(slog.Default()),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer pp.Destroy(context.Background())
//
//	err = pp.RegisterListener(func(msg []byte) error {
//	    fmt.Printf("subordinate: %q\n", msg)
//	    return nil
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := pp.Send([]byte("PING\n")); err != nil {
//	    log.Fatal(err)
//	}
//
// # Messages
//
// Messages are opaque byte buffers. Send writes exactly the given bytes and
// adds no delimiter; the listener delivers whatever a single read returns, so
// one logical message may arrive split across callbacks or merged with the
// next. Framing is a convention between the two programs.
//
// # Concurrency
//
// The callback runs on a dedicated listener goroutine, one invocation at a
// time. Sends are serialized. Destroy closes the subordinate's input, asks it
// to terminate, kills it if it does not exit within the stop timeout, and
// waits for the listener to finish before returning.
//
// # Error Handling
//
// Every error carries a stable status code:
//
//	if err := pp.Send(msg); err != nil {
//	    switch {
//	    case errors.Is(err, pairedproc.ErrNotActive):
//	        // the process is being destroyed
//	    case errors.Is(err, pairedproc.ErrSendFailed):
//	        // the subordinate closed its input
//	    }
//	}
//
// Nothing is retried automatically.
package pairedproc
