// Package fsm implements the hook-dispatching state machine that drives
// the kiosk through its operating phases.
//
// The machine owns no behavior of its own: on every tick of the host loop
// it dispatches the current state's do hooks (broadcast), then its
// validate hooks (first result wins), and performs exit/enter transitions
// when a validate hook names a target state. All handlers are supplied by
// registered plugins.
//
// When a failsafe state is configured, an error raised by any hook while
// in another state is logged and recovered by force-jumping to the
// failsafe state, so a misbehaving plugin cannot crash an unattended
// kiosk. Without a failsafe the error propagates to the host loop.
package fsm
