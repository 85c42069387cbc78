package app

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dshills/photobooth/internal/config"
	"github.com/dshills/photobooth/internal/counters"
	"github.com/dshills/photobooth/internal/device"
	"github.com/dshills/photobooth/internal/fsm"
	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
	"github.com/dshills/photobooth/internal/log"
	"github.com/dshills/photobooth/internal/screen"
	"github.com/dshills/photobooth/internal/view"
)

// States declared on the machine, in wiring order. The failsafe state is
// declared separately because debug mode removes it.
var kioskStates = []string{
	"wait",
	"choose",
	"chosen",
	"preview",
	"capture",
	"processing",
	"print",
}

// FailsafeState is the recovery state entered after a plugin failure.
const FailsafeState = "failsafe"

// States returns every state name the kiosk declares, the failsafe
// state included. Plugin loaders use it to enumerate valid hook names.
func States() []string {
	out := make([]string, 0, len(kioskStates)+1)
	out = append(out, kioskStates...)
	return append(out, FailsafeState)
}

// Application is the shared model passed to every hook through the
// dispatch context. Plugins read and mutate its exported fields directly;
// this is safe only because hook dispatch is strictly sequential.
type Application struct {
	// CaptureNbr is the number of captures selected for the current
	// sequence; zero while nothing is selected.
	CaptureNbr int

	// CaptureDate stamps the first capture of the current sequence.
	CaptureDate string

	// CaptureChoices are the selectable capture counts.
	CaptureChoices []int

	// Captures are the raw capture files of the current sequence, in
	// shot order. The camera plugin appends, the picture plugin consumes.
	Captures []string

	// PreviousPicture and PreviousPreviousPicture are the last two
	// assembled picture files, newest first. Empty when none.
	PreviousPicture         string
	PreviousPreviousPicture string

	// Count holds the persisted usage counters.
	Count *counters.Counters

	// Devices.
	Camera  device.Camera
	Printer device.Printer
	Lights  device.Lights

	// FlashEnabled mirrors the flash config for cheap access in hooks.
	FlashEnabled bool

	cfg     *config.Config
	logger  *log.Logger
	scr     *screen.Screen
	win     *view.Window
	machine *fsm.Machine

	registry   *hook.Registry
	dispatcher *hook.Dispatcher

	// posted receives device-originated events (buttons, printer).
	posted chan input.Event
	// reload signals a config change from the watcher.
	reload <-chan struct{}

	running atomic.Bool
	done    chan struct{}
}

// Options configures a new Application.
type Options struct {
	Config   *config.Config
	Logger   *log.Logger
	Screen   *screen.Screen
	Registry *hook.Registry

	Camera  device.Camera
	Printer device.Printer
	Lights  device.Lights

	// Reload, if set, delivers config-change signals; the loop reloads
	// and re-initializes when one arrives.
	Reload <-chan struct{}
}

// New builds the application: window, machine and state set. Plugins must
// already be registered on the registry; the machine reaches them through
// its dispatcher.
func New(opts Options) (*Application, error) {
	if opts.Config == nil || opts.Screen == nil || opts.Registry == nil {
		return nil, fmt.Errorf("config, screen and registry are required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	a := &Application{
		CaptureChoices: opts.Config.ValidCaptures(),
		Camera:         opts.Camera,
		Printer:        opts.Printer,
		Lights:         opts.Lights,
		cfg:            opts.Config,
		logger:         logger.WithComponent("app"),
		scr:            opts.Screen,
		registry:       opts.Registry,
		posted:         make(chan input.Event, 100),
		reload:         opts.Reload,
		done:           make(chan struct{}),
	}

	a.win = view.New(opts.Screen, opts.Config.Window.Background, opts.Config.Window.TextColor)
	a.dispatcher = hook.NewDispatcher(opts.Registry)

	count, err := counters.Load(opts.Config.JoinPath("counters.json"), opts.Config.Printer.MaxDuplicates)
	if err != nil {
		return nil, fmt.Errorf("loading counters: %w", err)
	}
	a.Count = count

	a.machine = fsm.New(a.dispatcher, a.baseContext(), logger)
	for _, name := range kioskStates {
		if err := a.machine.AddState(name); err != nil {
			return nil, err
		}
	}

	if err := a.initialize(); err != nil {
		return nil, err
	}
	return a, nil
}

// Config returns the current configuration.
func (a *Application) Config() *config.Config {
	return a.cfg
}

// Window returns the presentation surface.
func (a *Application) Window() *view.Window {
	return a.win
}

// Machine returns the state machine, mainly for tests and diagnostics.
func (a *Application) Machine() *fsm.Machine {
	return a.machine
}

// PictureName returns the final picture file name for the current
// sequence.
func (a *Application) PictureName() (string, error) {
	if a.CaptureDate == "" {
		return "", fmt.Errorf("no capture sequence in progress")
	}
	return a.CaptureDate + "_photobooth.jpg", nil
}

// StampCaptureDate records the start of a capture sequence.
func (a *Application) StampCaptureDate() {
	a.CaptureDate = time.Now().Format("2006-01-02-15-04-05")
}

// Post implements device.Poster: device events join the next tick's
// batch. Events are dropped when the loop is far behind rather than
// blocking a device callback.
func (a *Application) Post(ev input.Event) {
	select {
	case a.posted <- ev:
	default:
	}
}

// baseContext builds the per-dispatch values that never change between
// ticks. The machine injects the tick's event batch itself.
func (a *Application) baseContext() hook.Context {
	return hook.Context{
		hook.KeyConfig: a.cfg,
		hook.KeyApp:    a,
		hook.KeyWindow: a.win,
	}
}

// initialize applies the runtime-changeable configuration: capture
// choices, window colors, the failsafe safety net (disabled in debug so
// plugin bugs surface immediately), and the printer page budget.
func (a *Application) initialize() error {
	a.CaptureChoices = a.cfg.ValidCaptures()
	a.FlashEnabled = a.cfg.Flash.Enable
	a.win.SetColors(a.cfg.Window.Background, a.cfg.Window.TextColor)

	a.logger.SetLevel(log.ParseLevel(a.cfg.General.LogLevel))

	if a.cfg.General.Debug {
		a.logger.SetLevel(log.LevelDebug)
		if a.machine.Has(FailsafeState) {
			a.machine.RemoveFailsafeState()
			if err := a.machine.RemoveState(FailsafeState); err != nil {
				return err
			}
		}
	} else {
		if !a.machine.Has(FailsafeState) {
			if err := a.machine.AddState(FailsafeState); err != nil {
				return err
			}
		}
		if err := a.machine.AddFailsafeState(FailsafeState); err != nil {
			return err
		}
	}
	return nil
}
