package errors

import (
	"errors"
	"fmt"
)

// Code is a stable status code. The numeric values are part of the API.
type Code int

const (
	// OK reports success.
	OK Code = iota
	// InvalidArgument reports a malformed request from the caller.
	InvalidArgument
	// ResourceExhausted reports that the OS refused to allocate a resource.
	ResourceExhausted
	// ChannelCreationFailed reports that a pipe could not be created.
	ChannelCreationFailed
	// SpawnFailed reports that the subordinate could not be started.
	SpawnFailed
	// SendFailed reports a failed or short write to the subordinate.
	SendFailed
	// NotActive reports an operation attempted outside the Active state.
	NotActive
	// ListenerCreationFailed reports that the listener could not be started.
	ListenerCreationFailed
)

// Unknown is returned by CodeOf for errors that carry no status code.
const Unknown Code = -1

// String returns the code name.
func (c Code) String() string {
	switch c {
	case OK:
		return "ok"
	case InvalidArgument:
		return "invalid argument"
	case ResourceExhausted:
		return "resource exhausted"
	case ChannelCreationFailed:
		return "channel creation failed"
	case SpawnFailed:
		return "spawn failed"
	case SendFailed:
		return "send failed"
	case NotActive:
		return "not active"
	case ListenerCreationFailed:
		return "listener creation failed"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// PairedProcessError is the base interface for all errors of this module.
type PairedProcessError interface {
	error
	IsPairedProcessError() bool
	StatusCode() Code
}

// Compile-time verification that Error implements PairedProcessError.
var _ PairedProcessError = (*Error)(nil)

// Error is an operation failure tagged with a status code.
type Error struct {
	// Op is the failing operation ("launch", "send", ...). Empty for sentinels.
	Op string
	// Code classifies the failure.
	Code Code
	// Err is the underlying cause, if any.
	Err error
}

func (e *Error) Error() string {
	msg := "pairedproc: "
	if e.Op != "" {
		msg += e.Op + ": "
	}

	msg += e.Code.String()

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a sentinel with the same code. Sentinels are
// *Error values with no Op and no Err.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Op != "" || t.Err != nil {
		return false
	}

	return t.Code == e.Code
}

// IsPairedProcessError implements PairedProcessError.
func (e *Error) IsPairedProcessError() bool { return true }

// StatusCode implements PairedProcessError.
func (e *Error) StatusCode() Code { return e.Code }

// Sentinel errors, one per failure code.
var (
	ErrInvalidArgument        = &Error{Code: InvalidArgument}
	ErrResourceExhausted      = &Error{Code: ResourceExhausted}
	ErrChannelCreationFailed  = &Error{Code: ChannelCreationFailed}
	ErrSpawnFailed            = &Error{Code: SpawnFailed}
	ErrSendFailed             = &Error{Code: SendFailed}
	ErrNotActive              = &Error{Code: NotActive}
	ErrListenerCreationFailed = &Error{Code: ListenerCreationFailed}
)

// Causes attached to coded errors for conditions callers commonly check.
var (
	// ErrEmptyPath indicates Launch was called without an executable path.
	ErrEmptyPath = errors.New("empty executable path")

	// ErrEmptyMessage indicates Send was called with no bytes.
	ErrEmptyMessage = errors.New("empty message")

	// ErrNilCallback indicates RegisterListener was called with a nil callback.
	ErrNilCallback = errors.New("nil callback")

	// ErrListenerExists indicates a listener is already registered.
	ErrListenerExists = errors.New("listener already registered")

	// ErrShortWrite indicates the pipe accepted fewer bytes than requested.
	ErrShortWrite = errors.New("short write")

	// ErrNilProcess indicates an operation on a nil paired process.
	ErrNilProcess = errors.New("nil paired process")
)

// New returns an *Error for op with the given code and cause.
func New(op string, code Code, err error) *Error {
	return &Error{Op: op, Code: code, Err: err}
}

// CodeOf extracts the status code from err. A nil error is OK; an error
// without a code in its chain is Unknown.
func CodeOf(err error) Code {
	if err == nil {
		return OK
	}

	if e, ok := errors.AsType[PairedProcessError](err); ok {
		return e.StatusCode()
	}

	return Unknown
}
