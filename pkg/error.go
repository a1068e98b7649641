package pkg

import "errors"

// Hotplug subsystem errors.
var (
	// ErrNotSupported indicates the platform backend lacks hotplug capability.
	ErrNotSupported = errors.New("hotplug not supported")

	// ErrInvalidParameter indicates an invalid parameter was provided.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrNoMemory indicates the registry is at capacity.
	ErrNoMemory = errors.New("insufficient memory")

	// ErrNotRunning indicates the registry has been closed.
	ErrNotRunning = errors.New("not running")

	// ErrClosed indicates a wakeup channel was used after close.
	ErrClosed = errors.New("already closed")
)

// RegisterStatus classifies the outcome of a registration attempt for
// logging and diagnostics.
type RegisterStatus int

// Registration status values.
const (
	RegisterStatusOK           RegisterStatus = iota // Registration succeeded
	RegisterStatusNotSupported                       // Backend lacks hotplug capability
	RegisterStatusInvalid                            // Filter fields out of range or nil callback
	RegisterStatusNoMemory                           // Registry at capacity
	RegisterStatusNotRunning                         // Registry already closed
)

// String returns a string representation of the registration status.
func (s RegisterStatus) String() string {
	switch s {
	case RegisterStatusOK:
		return "ok"
	case RegisterStatusNotSupported:
		return "not supported"
	case RegisterStatusInvalid:
		return "invalid parameter"
	case RegisterStatusNoMemory:
		return "no memory"
	case RegisterStatusNotRunning:
		return "not running"
	default:
		return "unknown"
	}
}

// Error returns the corresponding sentinel error for the status.
func (s RegisterStatus) Error() error {
	switch s {
	case RegisterStatusOK:
		return nil
	case RegisterStatusNotSupported:
		return ErrNotSupported
	case RegisterStatusInvalid:
		return ErrInvalidParameter
	case RegisterStatusNoMemory:
		return ErrNoMemory
	case RegisterStatusNotRunning:
		return ErrNotRunning
	default:
		return ErrInvalidParameter
	}
}

// StatusOf maps a registration error back to its status classification.
func StatusOf(err error) RegisterStatus {
	switch {
	case err == nil:
		return RegisterStatusOK
	case errors.Is(err, ErrNotSupported):
		return RegisterStatusNotSupported
	case errors.Is(err, ErrNoMemory):
		return RegisterStatusNoMemory
	case errors.Is(err, ErrNotRunning):
		return RegisterStatusNotRunning
	default:
		return RegisterStatusInvalid
	}
}
