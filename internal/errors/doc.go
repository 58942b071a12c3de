// Package errors defines the status codes and error types for paired processes.
//
// Every failure returned by the launcher, sender, listener registration and
// teardown is an *Error carrying one of the stable Code values. Callers match
// on the code with errors.Is against the exported sentinels, or extract the
// full value with errors.As / errors.AsType.
package errors
