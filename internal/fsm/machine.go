package fsm

import (
	"fmt"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

// Machine advances through named states on every tick of the host loop.
// States are fungible containers looked up by name; all behavior lives in
// plugin hooks reached through the dispatcher.
//
// Machine is single-threaded by design: the host loop calls Process once
// per tick and no hook runs concurrently with another. The shared model
// and surface in the base context may be freely mutated by hooks because
// dispatch is strictly sequential; this invariant must be revisited before
// introducing any concurrency.
type Machine struct {
	dispatcher *hook.Dispatcher
	logger     *log.Logger

	// base holds the per-dispatch values that never change between ticks
	// (cfg, app, win). Events are injected per tick.
	base hook.Context

	declared map[string]struct{}
	order    []string
	current  string
	started  bool
	failsafe string
}

// New creates a machine over the given dispatcher. base supplies the
// context values handed to every hook (configuration, application model,
// presentation surface); the machine adds the tick's event batch itself.
func New(dispatcher *hook.Dispatcher, base hook.Context, logger *log.Logger) *Machine {
	if logger == nil {
		logger = log.Discard()
	}
	return &Machine{
		dispatcher: dispatcher,
		logger:     logger.WithComponent("machine"),
		base:       base,
		declared:   make(map[string]struct{}),
	}
}

// AddState declares a new state name.
func (m *Machine) AddState(name string) error {
	if _, ok := m.declared[name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateState, name)
	}
	m.declared[name] = struct{}{}
	m.order = append(m.order, name)
	return nil
}

// RemoveState deletes a declared state. The current state cannot be
// removed.
func (m *Machine) RemoveState(name string) error {
	if _, ok := m.declared[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}
	if m.started && name == m.current {
		return fmt.Errorf("%w: cannot remove current state %q", ErrInvalidOperation, name)
	}
	delete(m.declared, name)
	for i, s := range m.order {
		if s == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
	if m.failsafe == name {
		m.failsafe = ""
	}
	return nil
}

// AddFailsafeState marks a declared state as the failsafe target. Only
// one failsafe may be registered; a second call replaces the first.
func (m *Machine) AddFailsafeState(name string) error {
	if _, ok := m.declared[name]; !ok {
		return fmt.Errorf("%w: failsafe %q", ErrUnknownState, name)
	}
	m.failsafe = name
	return nil
}

// RemoveFailsafeState clears the failsafe target, disabling the safety
// net. It is a no-op if none is configured.
func (m *Machine) RemoveFailsafeState() {
	m.failsafe = ""
}

// Failsafe returns the configured failsafe state name, or "".
func (m *Machine) Failsafe() string {
	return m.failsafe
}

// Current returns the current state name. It is meaningful only after the
// first SetState.
func (m *Machine) Current() string {
	return m.current
}

// Started reports whether the machine has entered its initial state.
func (m *Machine) Started() bool {
	return m.started
}

// States returns the declared state names in declaration order.
func (m *Machine) States() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}

// Has reports whether a state name is declared.
func (m *Machine) Has(name string) bool {
	_, ok := m.declared[name]
	return ok
}

// SetState jumps unconditionally to the named state: the previous current
// state's exit hooks run first (if the machine has started), then the new
// state's enter hooks, then the current pointer moves. Re-entering the
// current state is permitted and re-runs exit and enter.
//
// SetState is for machine initialization and explicit resets; tick-driven
// transitions go through Process.
func (m *Machine) SetState(name string) error {
	return m.transition(name, m.base, true)
}

// Process runs the per-tick protocol for the current state:
//
//  1. state_<current>_do, broadcast
//  2. state_<current>_validate, first result wins
//  3. on a non-nil result, exit the current state and enter the target
//     (self re-entry included)
//
// Any error raised in steps 1-3 is recovered by force-jumping to the
// failsafe state, skipping the failing state's own exit hooks, provided a
// failsafe is configured and the failure did not occur while already in
// it. Otherwise the error propagates to the host loop.
func (m *Machine) Process(events any) error {
	err := m.tick(events)
	if err == nil {
		return nil
	}

	if m.failsafe == "" || m.current == m.failsafe {
		return err
	}

	m.logger.Error("state %q failed: %v", m.current, err)
	m.logger.Error(log.CrashMessage())

	// Abnormal unwind: the failing state gets no clean exit.
	if fsErr := m.transition(m.failsafe, m.base, false); fsErr != nil {
		return fmt.Errorf("entering failsafe state: %w", fsErr)
	}
	return nil
}

func (m *Machine) tick(events any) error {
	if !m.started {
		return fmt.Errorf("%w: machine has no current state", ErrInvalidOperation)
	}

	ctx := m.base.With(hook.KeyEvents, events)

	if _, err := m.dispatcher.Call(hook.StateDo(m.current), hook.Broadcast, ctx); err != nil {
		return err
	}

	result, err := m.dispatcher.Call(hook.StateValidate(m.current), hook.FirstResult, ctx)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}

	target, ok := result.(string)
	if !ok {
		return fmt.Errorf("%w: validate hook for %q returned %T, want string",
			ErrInvalidOperation, m.current, result)
	}

	return m.transition(target, ctx, true)
}

// transition moves the machine to name. When runExit is false the old
// state's exit hooks are skipped (failsafe unwind).
func (m *Machine) transition(name string, ctx hook.Context, runExit bool) error {
	if _, ok := m.declared[name]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownState, name)
	}

	if runExit && m.started {
		if _, err := m.dispatcher.Call(hook.StateExit(m.current), hook.Broadcast, ctx); err != nil {
			return err
		}
	}

	if m.started {
		m.logger.Debug("state %q -> %q", m.current, name)
	} else {
		m.logger.Debug("initial state %q", name)
	}

	if _, err := m.dispatcher.Call(hook.StateEnter(name), hook.Broadcast, ctx); err != nil {
		return err
	}

	m.current = name
	m.started = true
	return nil
}
