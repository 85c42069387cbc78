// Package lua loads user plugins written in Lua. A plugin is a single
// file; every top-level function whose name matches a hook name
// (state_<name>_<phase> or one of the lifecycle hooks) becomes a
// handler for that hook. Handlers receive one table argument holding
// the dispatch context and may return a state name from validate
// hooks.
//
// gopher-lua states are not goroutine safe. That is fine here: hook
// dispatch is strictly sequential and each plugin owns its state.
package lua

import (
	"fmt"
	"path/filepath"
	"strings"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

// Plugin is one loaded Lua file, adapted to hook.Plugin.
type Plugin struct {
	name   string
	state  *lua.LState
	logger *log.Logger
	hooks  map[string]hook.Handler
}

// Load reads and executes the Lua file at path and collects its hook
// functions. The plugin name is the file name without extension.
func Load(path string, logger *log.Logger) (*Plugin, error) {
	if logger == nil {
		logger = log.Discard()
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	L := lua.NewState()
	sandbox(L)
	if err := L.DoFile(path); err != nil {
		L.Close()
		return nil, fmt.Errorf("lua plugin %s: %w", name, err)
	}

	p := &Plugin{
		name:   name,
		state:  L,
		logger: logger.WithComponent("lua/" + name),
		hooks:  make(map[string]hook.Handler),
	}
	p.collect()
	if len(p.hooks) == 0 {
		p.logger.Warn("plugin defines no hook functions")
	}
	return p, nil
}

// Name implements hook.Plugin.
func (p *Plugin) Name() string { return p.name }

// Hooks implements hook.Plugin.
func (p *Plugin) Hooks() map[string]hook.Handler { return p.hooks }

// Close releases the Lua state. After Close the plugin must not be
// dispatched to.
func (p *Plugin) Close() {
	p.state.Close()
}

// sandbox strips the loaders that would let a plugin pull in arbitrary
// code from disk. The rest of the stdlib stays available.
func sandbox(L *lua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}
	if pkg, ok := L.GetGlobal("package").(*lua.LTable); ok {
		L.SetField(pkg, "path", lua.LString(""))
		L.SetField(pkg, "cpath", lua.LString(""))
	}
}

// collect binds every recognized global function to its hook.
func (p *Plugin) collect() {
	for _, hookName := range hookNames() {
		fn, ok := p.state.GetGlobal(hookName).(*lua.LFunction)
		if !ok {
			continue
		}
		p.hooks[hookName] = hook.Handler{
			Needs: needsFor(hookName),
			Fn:    p.handler(hookName, fn),
		}
	}
}

// hookNames enumerates every hook a Lua plugin may implement.
func hookNames() []string {
	names := []string{hook.Startup, hook.Cleanup, hook.Configure, hook.Reset}
	for _, state := range app.States() {
		names = append(names,
			hook.StateEnter(state),
			hook.StateDo(state),
			hook.StateValidate(state),
			hook.StateExit(state),
		)
	}
	return names
}

// needsFor returns the context keys to request for a hook. Do and
// validate hooks run only inside the tick loop and get the event
// batch; configure and reset run before the application exists and get
// only the configuration.
func needsFor(hookName string) []hook.Key {
	switch {
	case hookName == hook.Configure || hookName == hook.Reset:
		return []hook.Key{hook.KeyConfig}
	case strings.HasSuffix(hookName, "_do") || strings.HasSuffix(hookName, "_validate"):
		return []hook.Key{hook.KeyConfig, hook.KeyApp, hook.KeyWindow, hook.KeyEvents}
	default:
		return []hook.Key{hook.KeyConfig, hook.KeyApp, hook.KeyWindow}
	}
}

// handler wraps one Lua function as a hook handler.
func (p *Plugin) handler(hookName string, fn *lua.LFunction) func(hook.Context) (any, error) {
	return func(ctx hook.Context) (any, error) {
		L := p.state
		arg := contextTable(L, ctx)
		if err := L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, arg); err != nil {
			return nil, fmt.Errorf("lua %s: %w", hookName, err)
		}
		ret := L.Get(-1)
		L.Pop(1)
		applyContextTable(arg, ctx)
		return returnValue(ret)
	}
}

// returnValue converts what a Lua hook returned. Only nil and strings
// are meaningful; anything else is a plugin bug worth failing on.
func returnValue(lv lua.LValue) (any, error) {
	switch v := lv.(type) {
	case *lua.LNilType:
		return nil, nil
	case lua.LString:
		return string(v), nil
	default:
		return nil, fmt.Errorf("lua hook returned %s, want string or nil", lv.Type())
	}
}
