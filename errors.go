package pairedproc

import "github.com/wagiedev/paired-process-go/internal/errors"

// Re-export error types from internal package

// Code is a stable status code carried by every error of this package.
type Code = errors.Code

// Status codes.
const (
	OK                     = errors.OK
	InvalidArgument        = errors.InvalidArgument
	ResourceExhausted      = errors.ResourceExhausted
	ChannelCreationFailed  = errors.ChannelCreationFailed
	SpawnFailed            = errors.SpawnFailed
	SendFailed             = errors.SendFailed
	NotActive              = errors.NotActive
	ListenerCreationFailed = errors.ListenerCreationFailed
)

// Error is an operation failure tagged with a status code.
type Error = errors.Error

// PairedProcessError is the base interface for all errors of this package.
type PairedProcessError = errors.PairedProcessError

// Re-export sentinel errors from internal package.
var (
	// ErrInvalidArgument matches errors with code InvalidArgument.
	ErrInvalidArgument = errors.ErrInvalidArgument

	// ErrResourceExhausted matches errors with code ResourceExhausted.
	ErrResourceExhausted = errors.ErrResourceExhausted

	// ErrChannelCreationFailed matches errors with code ChannelCreationFailed.
	ErrChannelCreationFailed = errors.ErrChannelCreationFailed

	// ErrSpawnFailed matches errors with code SpawnFailed.
	ErrSpawnFailed = errors.ErrSpawnFailed

	// ErrSendFailed matches errors with code SendFailed.
	ErrSendFailed = errors.ErrSendFailed

	// ErrNotActive matches errors with code NotActive.
	ErrNotActive = errors.ErrNotActive

	// ErrListenerCreationFailed matches errors with code ListenerCreationFailed.
	ErrListenerCreationFailed = errors.ErrListenerCreationFailed

	// ErrListenerExists indicates a listener is already registered.
	ErrListenerExists = errors.ErrListenerExists
)

// CodeOf returns the status code carried by err: OK for nil, -1 for errors
// that did not come from this package.
func CodeOf(err error) Code {
	return errors.CodeOf(err)
}
