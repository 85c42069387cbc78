package hook

import "fmt"

// Machine-lifecycle hooks, called exactly once each outside the tick loop.
const (
	// Startup runs after states are declared, before the first tick.
	Startup = "startup"
	// Cleanup runs when the host loop terminates, including on the
	// error path.
	Cleanup = "cleanup"
	// Configure runs when plugins may extend the configuration schema.
	Configure = "configure"
	// Reset runs when the configuration is restored to defaults.
	Reset = "reset"
)

// StateEnter returns the enter hook name for a state.
func StateEnter(state string) string {
	return fmt.Sprintf("state_%s_enter", state)
}

// StateDo returns the do hook name for a state.
func StateDo(state string) string {
	return fmt.Sprintf("state_%s_do", state)
}

// StateValidate returns the validate hook name for a state.
func StateValidate(state string) string {
	return fmt.Sprintf("state_%s_validate", state)
}

// StateExit returns the exit hook name for a state.
func StateExit(state string) string {
	return fmt.Sprintf("state_%s_exit", state)
}
