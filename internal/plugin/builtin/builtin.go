// Package builtin ships the core plugins: view, camera, picture,
// printer and lights. Together they implement the wait/choose/capture/
// print flow; each one only touches the piece of hardware or UI it is
// named after, so any of them can be disabled or replaced by a user
// plugin.
package builtin

import (
	"fmt"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/config"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/view"
)

// Context value accessors. The dispatcher guarantees a declared key is
// bound, but not its type, so each accessor checks.

func appOf(ctx hook.Context) (*app.Application, error) {
	a, ok := ctx.Get(hook.KeyApp).(*app.Application)
	if !ok {
		return nil, fmt.Errorf("context key %q: unexpected type %T", hook.KeyApp, ctx.Get(hook.KeyApp))
	}
	return a, nil
}

func cfgOf(ctx hook.Context) (*config.Config, error) {
	c, ok := ctx.Get(hook.KeyConfig).(*config.Config)
	if !ok {
		return nil, fmt.Errorf("context key %q: unexpected type %T", hook.KeyConfig, ctx.Get(hook.KeyConfig))
	}
	return c, nil
}

func winOf(ctx hook.Context) (*view.Window, error) {
	w, ok := ctx.Get(hook.KeyWindow).(*view.Window)
	if !ok {
		return nil, fmt.Errorf("context key %q: unexpected type %T", hook.KeyWindow, ctx.Get(hook.KeyWindow))
	}
	return w, nil
}

func eventsOf(ctx hook.Context) (*input.Batch, error) {
	b, ok := ctx.Get(hook.KeyEvents).(*input.Batch)
	if !ok {
		return nil, fmt.Errorf("context key %q: unexpected type %T", hook.KeyEvents, ctx.Get(hook.KeyEvents))
	}
	return b, nil
}

// Common Needs sets. Enter and exit hooks can fire outside the tick
// loop, so they must not declare the events key.
var (
	needsApp       = []hook.Key{hook.KeyApp}
	needsWin       = []hook.Key{hook.KeyWindow}
	needsAppWin    = []hook.Key{hook.KeyApp, hook.KeyWindow}
	needsCfgApp    = []hook.Key{hook.KeyConfig, hook.KeyApp}
	needsCfgAppWin = []hook.Key{hook.KeyConfig, hook.KeyApp, hook.KeyWindow}
	needsTick      = []hook.Key{hook.KeyConfig, hook.KeyApp, hook.KeyWindow, hook.KeyEvents}
)
