package builtin

import (
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/log"
	"github.com/dshills/photobooth/internal/timer"
)

// ViewPlugin drives the window through the session flow and owns every
// state-to-state decision that depends on time: the choose timeout, the
// chosen and print display delays, and the failure screen delay. It is
// the only core plugin that answers validate hooks.
type ViewPlugin struct {
	logger *log.Logger

	// count is how many captures have been taken in the current session.
	count int

	failedTimer *timer.Timer
	chooseTimer *timer.Timer
	layoutTimer *timer.Timer
	printTimer  *timer.Timer
}

// NewViewPlugin creates the view plugin. Timer timeouts are taken from
// the configuration at each state entry, so a config reload applies to
// the next session without re-creating the plugin.
func NewViewPlugin(logger *log.Logger) *ViewPlugin {
	if logger == nil {
		logger = log.Discard()
	}
	return &ViewPlugin{
		logger:      logger.WithComponent("view"),
		failedTimer: timer.New(0),
		chooseTimer: timer.New(0),
		layoutTimer: timer.New(0),
		printTimer:  timer.New(0),
	}
}

// Name implements hook.Plugin.
func (p *ViewPlugin) Name() string { return "view" }

// Hooks implements hook.Plugin.
func (p *ViewPlugin) Hooks() map[string]hook.Handler {
	return map[string]hook.Handler{
		hook.StateEnter("failsafe"):    {Needs: []hook.Key{hook.KeyConfig, hook.KeyWindow}, Fn: p.failsafeEnter},
		hook.StateValidate("failsafe"): {Fn: p.failsafeValidate},

		hook.StateEnter("wait"):    {Needs: needsCfgAppWin, Fn: p.waitEnter},
		hook.StateDo("wait"):       {Needs: needsTick, Fn: p.waitDo},
		hook.StateValidate("wait"): {Needs: []hook.Key{hook.KeyEvents}, Fn: p.waitValidate},
		hook.StateExit("wait"):     {Needs: needsWin, Fn: p.waitExit},

		hook.StateEnter("choose"):    {Needs: needsCfgAppWin, Fn: p.chooseEnter},
		hook.StateDo("choose"):       {Needs: needsTick, Fn: p.chooseDo},
		hook.StateValidate("choose"): {Needs: needsCfgApp, Fn: p.chooseValidate},

		hook.StateEnter("chosen"):    {Needs: needsCfgAppWin, Fn: p.chosenEnter},
		hook.StateValidate("chosen"): {Fn: p.chosenValidate},

		hook.StateEnter("preview"):    {Needs: needsAppWin, Fn: p.previewEnter},
		hook.StateValidate("preview"): {Fn: p.previewValidate},

		hook.StateDo("capture"):       {Needs: needsTick, Fn: p.captureDo},
		hook.StateValidate("capture"): {Needs: needsApp, Fn: p.captureValidate},

		hook.StateEnter("processing"):    {Needs: needsWin, Fn: p.processingEnter},
		hook.StateValidate("processing"): {Needs: needsCfgApp, Fn: p.processingValidate},

		hook.StateEnter("print"):    {Needs: needsCfgAppWin, Fn: p.printEnter},
		hook.StateValidate("print"): {Needs: needsTick, Fn: p.printValidate},
	}
}

func (p *ViewPlugin) failsafeEnter(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	win.ShowOops()
	p.failedTimer.SetTimeout(cfg.FailsafeDelay())
	p.failedTimer.Start()
	return nil, nil
}

func (p *ViewPlugin) failsafeValidate(hook.Context) (any, error) {
	if p.failedTimer.IsTimeout() {
		return "wait", nil
	}
	return nil, nil
}

func (p *ViewPlugin) waitEnter(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	printable := a.PreviousPicture != "" &&
		a.Printer.IsReady() &&
		a.Count.RemainingDuplicates() > 0 &&
		cfg.Printer.DelaySec > 0
	win.ShowIntro(a.PreviousPicture, printable)
	if a.Printer.IsInstalled() {
		win.SetPrintNumber(a.Printer.Tasks(), !a.Printer.IsReady())
	}
	return nil, nil
}

func (p *ViewPlugin) waitDo(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := eventsOf(ctx)
	if err != nil {
		return nil, err
	}
	if batch.PrinterStatus() != nil && a.Printer.IsInstalled() {
		win.SetPrintNumber(a.Printer.Tasks(), !a.Printer.IsReady())
	}
	return nil, nil
}

func (p *ViewPlugin) waitValidate(ctx hook.Context) (any, error) {
	batch, err := eventsOf(ctx)
	if err != nil {
		return nil, err
	}
	if batch.Center() != nil {
		return "choose", nil
	}
	return nil, nil
}

func (p *ViewPlugin) waitExit(ctx hook.Context) (any, error) {
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	p.count = 0
	win.ShowImage("")
	return nil, nil
}

func (p *ViewPlugin) chooseEnter(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	p.logger.Info("waiting for capture-count choice from %v", a.CaptureChoices)
	a.CaptureNbr = 0
	win.SetPrintNumber(0, false)
	win.ShowChoice(a.CaptureChoices, 0)
	p.chooseTimer.SetTimeout(cfg.ChooseTimeout())
	p.chooseTimer.Start()
	return nil, nil
}

func (p *ViewPlugin) chooseDo(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := eventsOf(ctx)
	if err != nil {
		return nil, err
	}
	if picked, ok := pickChoice(a.CaptureChoices, batch.Choice()); ok {
		a.CaptureNbr = picked
		win.ShowChoice(a.CaptureChoices, picked)
	}
	return nil, nil
}

func (p *ViewPlugin) chooseValidate(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if a.CaptureNbr > 0 {
		if cfg.Window.ChosenDelaySec > 0 {
			return "chosen", nil
		}
		return "preview", nil
	}
	if p.chooseTimer.IsTimeout() {
		return "wait", nil
	}
	return nil, nil
}

func (p *ViewPlugin) chosenEnter(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	win.ShowChoice(a.CaptureChoices, a.CaptureNbr)
	p.layoutTimer.SetTimeout(cfg.ChosenDelay())
	p.layoutTimer.Start()
	return nil, nil
}

func (p *ViewPlugin) chosenValidate(hook.Context) (any, error) {
	if p.layoutTimer.IsTimeout() {
		return "preview", nil
	}
	return nil, nil
}

func (p *ViewPlugin) previewEnter(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	p.count++
	win.ShowCaptureNumber(p.count, a.CaptureNbr)
	return nil, nil
}

func (p *ViewPlugin) previewValidate(hook.Context) (any, error) {
	return "capture", nil
}

func (p *ViewPlugin) captureDo(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	win.ShowCaptureNumber(p.count, a.CaptureNbr)
	return nil, nil
}

func (p *ViewPlugin) captureValidate(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if p.count >= a.CaptureNbr {
		return "processing", nil
	}
	return "preview", nil
}

func (p *ViewPlugin) processingEnter(ctx hook.Context) (any, error) {
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	win.ShowWork()
	return nil, nil
}

func (p *ViewPlugin) processingValidate(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	if a.Printer.IsReady() && cfg.Printer.DelaySec > 0 && a.Count.RemainingDuplicates() > 0 {
		return "print", nil
	}
	return "wait", nil
}

func (p *ViewPlugin) printEnter(ctx hook.Context) (any, error) {
	cfg, err := cfgOf(ctx)
	if err != nil {
		return nil, err
	}
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	win.ShowPrint(a.PreviousPicture)
	win.SetPrintNumber(a.Printer.Tasks(), !a.Printer.IsReady())
	p.printTimer.SetTimeout(cfg.PrinterDelay())
	p.printTimer.Start()
	return nil, nil
}

func (p *ViewPlugin) printValidate(ctx hook.Context) (any, error) {
	a, err := appOf(ctx)
	if err != nil {
		return nil, err
	}
	win, err := winOf(ctx)
	if err != nil {
		return nil, err
	}
	batch, err := eventsOf(ctx)
	if err != nil {
		return nil, err
	}
	if batch.Right() != nil {
		win.SetPrintNumber(a.Printer.Tasks(), !a.Printer.IsReady())
		return "wait", nil
	}
	if p.printTimer.IsTimeout() {
		return "wait", nil
	}
	return nil, nil
}

// pickChoice maps a directional event to one of the configured capture
// counts: left picks the first, right the last, center the middle one.
// The original two-button booths only wired left and right; center
// keeps a three-way touch layout usable with three choices.
func pickChoice(choices []int, dir input.Direction) (int, bool) {
	if len(choices) == 0 {
		return 0, false
	}
	switch dir {
	case input.DirectionLeft:
		return choices[0], true
	case input.DirectionRight:
		return choices[len(choices)-1], true
	case input.DirectionCenter:
		return choices[len(choices)/2], true
	default:
		return 0, false
	}
}
