package lua

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/config"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/log"
	"github.com/dshills/photobooth/internal/screen"
	"github.com/dshills/photobooth/internal/view"
)

const testScript = `
local ticks = 0

function startup(ctx)
end

function state_wait_do(ctx)
  ticks = ticks + 1
end

function state_wait_validate(ctx)
  if ctx.events.center then
    return "choose"
  end
  return nil
end

function state_choose_do(ctx)
  if ctx.events.left then
    ctx.app.capture_nbr = ctx.app.capture_choices[1]
  end
end

function state_capture_validate(ctx)
  return 42
end

function not_a_hook()
end
`

func writeScript(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "greeter.lua")
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatalf("write script: %v", err)
	}
	return path
}

func loadScript(t *testing.T, src string) *Plugin {
	t.Helper()
	p, err := Load(writeScript(t, src), log.Discard())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	t.Cleanup(p.Close)
	return p
}

// tickContext builds the full per-tick dispatch context around mock
// model values.
func tickContext(a *app.Application, events ...input.Event) hook.Context {
	cfg := config.Default()
	win := view.New(screen.NewSimulation(90, 24), cfg.Window.Background, cfg.Window.TextColor)
	return hook.Context{
		hook.KeyConfig: cfg,
		hook.KeyApp:    a,
		hook.KeyWindow: win,
		hook.KeyEvents: input.NewBatch(events, 90),
	}
}

func TestLoadCollectsHookFunctions(t *testing.T) {
	p := loadScript(t, testScript)

	if p.Name() != "greeter" {
		t.Errorf("Name() = %q, want greeter", p.Name())
	}
	for _, want := range []string{"startup", "state_wait_do", "state_wait_validate", "state_choose_do"} {
		if _, ok := p.Hooks()[want]; !ok {
			t.Errorf("hook %s not collected", want)
		}
	}
	if _, ok := p.Hooks()["not_a_hook"]; ok {
		t.Error("unrecognized function collected as a hook")
	}
}

func TestValidateReturnsStateName(t *testing.T) {
	p := loadScript(t, testScript)
	reg := hook.NewRegistry()
	reg.Register(p)
	disp := hook.NewDispatcher(reg)

	a := &app.Application{CaptureChoices: []int{1, 2, 4}}

	got, err := disp.Call("state_wait_validate", hook.FirstResult, tickContext(a, input.PointerEvent(45, 10)))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got != "choose" {
		t.Errorf("validate returned %v, want choose", got)
	}

	got, err = disp.Call("state_wait_validate", hook.FirstResult, tickContext(a))
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got != nil {
		t.Errorf("validate returned %v for an empty batch, want nil", got)
	}
}

func TestHookMutatesCaptureNumber(t *testing.T) {
	p := loadScript(t, testScript)
	reg := hook.NewRegistry()
	reg.Register(p)
	disp := hook.NewDispatcher(reg)

	a := &app.Application{CaptureChoices: []int{2, 4}}
	if _, err := disp.Call("state_choose_do", hook.Broadcast, tickContext(a, input.ButtonEvent(input.ButtonLeft))); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if a.CaptureNbr != 2 {
		t.Errorf("CaptureNbr = %d, want 2", a.CaptureNbr)
	}
}

func TestNonStringReturnFails(t *testing.T) {
	p := loadScript(t, testScript)
	reg := hook.NewRegistry()
	reg.Register(p)
	disp := hook.NewDispatcher(reg)

	a := &app.Application{}
	if _, err := disp.Call("state_capture_validate", hook.FirstResult, tickContext(a)); err == nil {
		t.Fatal("expected error for numeric return")
	}
}

func TestLifecycleHookNeedsOnlyConfig(t *testing.T) {
	p := loadScript(t, `
function configure(ctx)
  if ctx.cfg.directory == "" then
    error("no directory")
  end
end
`)
	reg := hook.NewRegistry()
	reg.Register(p)
	disp := hook.NewDispatcher(reg)

	ctx := hook.Context{hook.KeyConfig: config.Default()}
	if _, err := disp.Call(hook.Configure, hook.Broadcast, ctx); err != nil {
		t.Fatalf("configure dispatch: %v", err)
	}
}

func TestLoadRejectsBrokenScript(t *testing.T) {
	if _, err := Load(writeScript(t, "function broken("), log.Discard()); err == nil {
		t.Fatal("expected load error for invalid Lua")
	}
}

func TestLuaErrorPropagates(t *testing.T) {
	p := loadScript(t, `
function state_wait_do(ctx)
  error("boom")
end
`)
	reg := hook.NewRegistry()
	reg.Register(p)
	disp := hook.NewDispatcher(reg)

	a := &app.Application{}
	if _, err := disp.Call("state_wait_do", hook.Broadcast, tickContext(a)); err == nil {
		t.Fatal("expected lua runtime error to propagate")
	}
}

func TestSandboxRemovesLoaders(t *testing.T) {
	if _, err := Load(writeScript(t, `
if dofile ~= nil or loadfile ~= nil or load ~= nil then
  error("loaders still available")
end
`), log.Discard()); err != nil {
		t.Fatalf("load: %v", err)
	}
}
