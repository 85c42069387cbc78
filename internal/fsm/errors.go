package fsm

import "errors"

// Machine configuration errors. These indicate a bug in machine setup or
// in a plugin and are never retried or masked.
var (
	// ErrDuplicateState indicates a state name was declared twice.
	ErrDuplicateState = errors.New("duplicate state")

	// ErrUnknownState indicates a state name that was never declared.
	ErrUnknownState = errors.New("unknown state")

	// ErrInvalidOperation indicates an operation that cannot be performed,
	// such as removing the current state.
	ErrInvalidOperation = errors.New("invalid operation")
)
