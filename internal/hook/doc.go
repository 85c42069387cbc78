// Package hook provides the extension-point machinery of the kiosk engine.
//
// All behavior of the state machine lives in plugins. A plugin exposes a set
// of named hooks; the registry holds plugins in a stable registration order
// and the dispatcher invokes, for a given hook name, every plugin that
// implements it, aggregating results per a dispatch mode.
//
// The main components are:
//   - Registry: the ordered plugin list and hook-name lookup
//   - Dispatcher: Broadcast / FirstResult invocation over a Context
//   - Context: the capability-keyed set of values handlers may request
//
// Example usage:
//
//	reg := hook.NewRegistry()
//	reg.Register(viewPlugin)
//	disp := hook.NewDispatcher(reg)
//	result, err := disp.Call(hook.StateValidate("wait"), hook.FirstResult, ctx)
package hook
