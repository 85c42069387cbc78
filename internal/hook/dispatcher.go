package hook

import "fmt"

// Mode selects how a dispatch aggregates results across implementers.
type Mode int

const (
	// Broadcast invokes every implementer once, in order, and discards
	// return values.
	Broadcast Mode = iota
	// FirstResult invokes implementers in order until one returns a
	// non-nil value; that value is the call's result and later
	// implementers are skipped.
	FirstResult
)

// String returns a string representation of the mode.
func (m Mode) String() string {
	switch m {
	case Broadcast:
		return "broadcast"
	case FirstResult:
		return "first-result"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Dispatcher invokes hook implementers against a context.
type Dispatcher struct {
	registry *Registry
}

// NewDispatcher creates a dispatcher over the given registry.
func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Call runs one dispatch of the named hook.
//
// Each implementer receives only the context keys its handler declares.
// A declared key missing from ctx is an ErrUnresolvedContext, surfaced
// immediately without running the handler. An error from any implementer
// aborts the remaining implementers and propagates; there is no
// partial-result swallowing.
//
// Under Broadcast the returned value is always nil. Under FirstResult it
// is the first non-nil value produced in call order, or nil if every
// implementer returned nil.
func (d *Dispatcher) Call(name string, mode Mode, ctx Context) (any, error) {
	for _, bound := range d.registry.ImplementersOf(name) {
		sub, missing, ok := ctx.subset(bound.Handler.Needs)
		if !ok {
			return nil, &CallError{
				Plugin: bound.Plugin.Name(),
				Hook:   name,
				Err:    fmt.Errorf("%w: %q", ErrUnresolvedContext, missing),
			}
		}

		result, err := bound.Handler.Fn(sub)
		if err != nil {
			return nil, &CallError{Plugin: bound.Plugin.Name(), Hook: name, Err: err}
		}

		if mode == FirstResult && result != nil {
			return result, nil
		}
	}
	return nil, nil
}
