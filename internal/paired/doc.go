// Package paired implements the paired-process lifecycle.
//
// Launch creates a channel pair, spawns the subordinate with its standard
// input and output bound to the pair, and returns an Active Process. The
// controller then writes with Send, optionally receives subordinate output
// through a callback registered with RegisterListener, and finally releases
// everything with Destroy.
//
// Concurrency model:
//   - Send calls are serialized; only the controller writes the outbound pipe.
//   - At most one listener goroutine reads the inbound pipe and invokes the
//     callback sequentially on that goroutine.
//   - A reaper goroutine waits on the subordinate so that teardown can bound
//     its waits.
//   - Destroy joins the listener before it returns.
package paired
