package builtin

import (
	"fmt"

	"github.com/dshills/photobooth/internal/app"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/log"
)

// PrinterPlugin sends pictures to the printer. A right press prints
// the previous picture, both from the print screen after a session and
// from the wait screen while the picture is still on display. Leaving
// the print screen without printing counts the picture as forgotten.
type PrinterPlugin struct {
	logger *log.Logger

	// printed tracks whether the current print-screen visit resulted in
	// a print, for the forgotten counter.
	printed bool
}

// NewPrinterPlugin creates the printer plugin.
func NewPrinterPlugin(logger *log.Logger) *PrinterPlugin {
	if logger == nil {
		logger = log.Discard()
	}
	return &PrinterPlugin{logger: logger.WithComponent("printer")}
}

// Name implements hook.Plugin.
func (p *PrinterPlugin) Name() string { return "printer" }

// Hooks implements hook.Plugin.
func (p *PrinterPlugin) Hooks() map[string]hook.Handler {
	return map[string]hook.Handler{
		hook.Startup:             {Needs: needsCfgApp, Fn: p.startup},
		hook.StateDo("wait"):     {Needs: needsTick, Fn: p.stateDo},
		hook.StateEnter("print"): {Fn: p.printEnter},
		hook.StateDo("print"):    {Needs: needsTick, Fn: p.stateDo},
		hook.StateExit("print"):  {Needs: needsApp, Fn: p.printExit},
	}
}

func (p *PrinterPlugin) startup(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if !a.Printer.IsInstalled() {
		p.logger.Warn("no printer installed, printing disabled")
	} else if cfg.Printer.DelaySec <= 0 {
		p.logger.Info("printer delay is zero, printing disabled")
	}
	return nil, nil
}

func (p *PrinterPlugin) printEnter(hook.Context) (any, error) {
	p.printed = false
	return nil, nil
}

// stateDo handles the right press on both the wait and print screens.
func (p *PrinterPlugin) stateDo(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := eventsOf(ctx)
	if err != nil {
		return nil, err
	}
	if batch.Right() == nil {
		return nil, nil
	}
	if a.PreviousPicture == "" || cfg.Printer.DelaySec <= 0 {
		return nil, nil
	}
	if !a.Printer.IsReady() {
		p.logger.Warn("printer not ready, ignoring print request")
		return nil, nil
	}
	if a.Count.RemainingDuplicates() <= 0 {
		p.logger.Warn("duplicate limit reached for %s", a.PreviousPicture)
		return nil, nil
	}
	return nil, p.print(a)
}

func (p *PrinterPlugin) print(a *app.Application) error {
	if err := a.Printer.Print(a.PreviousPicture); err != nil {
		return fmt.Errorf("print %s: %w", a.PreviousPicture, err)
	}
	p.printed = true
	a.Lights.PrinterLED(true)
	if err := a.Count.IncrementPrinted(); err != nil {
		p.logger.Warn("update printed counter: %v", err)
	}
	if err := a.Count.ConsumeDuplicate(); err != nil {
		p.logger.Warn("update duplicate counter: %v", err)
	}
	p.logger.Info("queued %s for printing", a.PreviousPicture)
	return nil
}

func (p *PrinterPlugin) printExit(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if !p.printed {
		if err := a.Count.IncrementForgotten(); err != nil {
			p.logger.Warn("update forgotten counter: %v", err)
		}
	}
	return nil, nil
}
