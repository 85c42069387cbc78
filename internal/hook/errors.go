package hook

import (
	"errors"
	"fmt"
)

// Hook dispatch errors.
var (
	// ErrUnresolvedContext indicates a handler declared a context key that
	// the current dispatch does not supply. This is a plugin-author bug
	// (e.g. asking for events inside a startup hook) and is surfaced
	// before the handler runs.
	ErrUnresolvedContext = errors.New("unresolved context key")
)

// CallError wraps an error raised by a handler (or by context binding)
// during one dispatch, identifying the plugin and hook at fault.
type CallError struct {
	Plugin string // name of the plugin whose handler failed
	Hook   string // hook being dispatched
	Err    error  // underlying error
}

// Error implements the error interface.
func (e *CallError) Error() string {
	return fmt.Sprintf("hook %q: plugin %q: %v", e.Hook, e.Plugin, e.Err)
}

// Unwrap returns the underlying error.
func (e *CallError) Unwrap() error {
	return e.Err
}
