package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/config"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/view"
)

// contextTable builds the single table argument passed to a Lua hook.
// Only the keys bound in the dispatch context appear; a lifecycle hook
// sees no events table, same as a Go handler.
func contextTable(L *lua.LState, ctx hook.Context) *lua.LTable {
	root := L.NewTable()
	if cfg, ok := ctx.Get(hook.KeyConfig).(*config.Config); ok {
		L.SetField(root, "cfg", configTable(L, cfg))
	}
	if a, ok := ctx.Get(hook.KeyApp).(*app.Application); ok {
		L.SetField(root, "app", appTable(L, a))
	}
	if win, ok := ctx.Get(hook.KeyWindow).(*view.Window); ok {
		L.SetField(root, "win", windowTable(L, win))
	}
	if batch, ok := ctx.Get(hook.KeyEvents).(*input.Batch); ok {
		L.SetField(root, "events", eventsTable(L, batch))
	}
	return root
}

func configTable(L *lua.LState, cfg *config.Config) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "debug", lua.LBool(cfg.General.Debug))
	L.SetField(t, "directory", lua.LString(cfg.General.Directory))
	L.SetField(t, "fullscreen", lua.LBool(cfg.Window.Fullscreen))
	L.SetField(t, "printer_name", lua.LString(cfg.Printer.Name))
	L.SetField(t, "printer_delay", lua.LNumber(cfg.Printer.DelaySec))
	L.SetField(t, "max_pages", lua.LNumber(cfg.Printer.MaxPages))
	L.SetField(t, "max_duplicates", lua.LNumber(cfg.Printer.MaxDuplicates))
	L.SetField(t, "flash", lua.LBool(cfg.Flash.Enable))
	return t
}

func appTable(L *lua.LState, a *app.Application) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "capture_nbr", lua.LNumber(a.CaptureNbr))
	L.SetField(t, "capture_date", lua.LString(a.CaptureDate))
	L.SetField(t, "previous_picture", lua.LString(a.PreviousPicture))
	L.SetField(t, "previous_previous_picture", lua.LString(a.PreviousPreviousPicture))
	choices := L.NewTable()
	for _, n := range a.CaptureChoices {
		choices.Append(lua.LNumber(n))
	}
	L.SetField(t, "capture_choices", choices)
	if a.Count != nil {
		L.SetField(t, "taken", lua.LNumber(a.Count.Taken()))
		L.SetField(t, "printed", lua.LNumber(a.Count.Printed()))
		L.SetField(t, "forgotten", lua.LNumber(a.Count.Forgotten()))
		L.SetField(t, "remaining_duplicates", lua.LNumber(a.Count.RemainingDuplicates()))
	}
	return t
}

func windowTable(L *lua.LState, win *view.Window) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "last_screen", lua.LString(win.LastScreen()))
	L.SetField(t, "fullscreen", lua.LBool(win.IsFullscreen()))
	return t
}

func eventsTable(L *lua.LState, batch *input.Batch) *lua.LTable {
	t := L.NewTable()
	L.SetField(t, "left", lua.LBool(batch.Left() != nil))
	L.SetField(t, "center", lua.LBool(batch.Center() != nil))
	L.SetField(t, "right", lua.LBool(batch.Right() != nil))
	L.SetField(t, "quit", lua.LBool(batch.Quit() != nil))
	L.SetField(t, "printer_status", lua.LBool(batch.PrinterStatus() != nil))
	L.SetField(t, "choice", lua.LString(batch.Choice().String()))
	return t
}

// applyContextTable writes the fields a Lua hook may mutate back into
// the Go model. Only app.capture_nbr is writable; everything else in
// the table is a snapshot.
func applyContextTable(root *lua.LTable, ctx hook.Context) {
	a, ok := ctx.Get(hook.KeyApp).(*app.Application)
	if !ok {
		return
	}
	at, ok := root.RawGetString("app").(*lua.LTable)
	if !ok {
		return
	}
	if n, ok := at.RawGetString("capture_nbr").(lua.LNumber); ok {
		a.CaptureNbr = int(n)
	}
}
