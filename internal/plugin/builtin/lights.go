package builtin

import (
	"github.com/dshills/photobooth/internal/hook"
)

// LightsPlugin drives the LED board. The capture LED invites the next
// visitor on the wait screen, the flash lights from the moment a
// capture count is chosen until processing starts, and the printer LED
// is switched back off once the print screen is gone.
type LightsPlugin struct{}

// NewLightsPlugin creates the lights plugin.
func NewLightsPlugin() *LightsPlugin { return &LightsPlugin{} }

// Name implements hook.Plugin.
func (p *LightsPlugin) Name() string { return "lights" }

// Hooks implements hook.Plugin.
func (p *LightsPlugin) Hooks() map[string]hook.Handler {
	return map[string]hook.Handler{
		hook.Startup:                  {Needs: needsApp, Fn: p.allOff},
		hook.Cleanup:                  {Needs: needsApp, Fn: p.allOff},
		hook.StateEnter("wait"):       {Needs: needsApp, Fn: p.waitEnter},
		hook.StateExit("wait"):        {Needs: needsApp, Fn: p.waitExit},
		hook.StateEnter("chosen"):     {Needs: needsApp, Fn: p.flashOn},
		hook.StateEnter("processing"): {Needs: needsApp, Fn: p.flashOff},
		hook.StateExit("print"):       {Needs: needsApp, Fn: p.printExit},
	}
}

func (p *LightsPlugin) allOff(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Lights.Off()
	return nil, nil
}

func (p *LightsPlugin) waitEnter(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Lights.CaptureLED(true)
	return nil, nil
}

func (p *LightsPlugin) waitExit(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Lights.CaptureLED(false)
	return nil, nil
}

func (p *LightsPlugin) flashOn(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if a.FlashEnabled {
		a.Lights.Flash(true)
	}
	return nil, nil
}

func (p *LightsPlugin) flashOff(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Lights.Flash(false)
	return nil, nil
}

func (p *LightsPlugin) printExit(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	a.Lights.PrinterLED(false)
	return nil, nil
}
