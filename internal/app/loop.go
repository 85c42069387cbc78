package app

import (
	"time"

	"github.com/dshills/photobooth/internal/hook"
	"github.com/dshills/photobooth/internal/input"
)

// tickInterval paces the host loop at 40 ticks per second, matching the
// refresh rate the view was designed against.
const tickInterval = 25 * time.Millisecond

// Run drives the host loop until a quit event (reported as ErrQuit) or
// a fatal error. The
// startup and cleanup hooks run exactly once each, outside the tick loop;
// cleanup runs on the error path too.
func (a *Application) Run() error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	defer func() {
		if _, err := a.dispatcher.Call(hook.Cleanup, hook.Broadcast, a.baseContext()); err != nil {
			a.logger.Error("cleanup hook failed: %v", err)
		}
	}()

	if _, err := a.dispatcher.Call(hook.Startup, hook.Broadcast, a.baseContext()); err != nil {
		return err
	}
	if err := a.machine.SetState("wait"); err != nil {
		return err
	}

	a.done = make(chan struct{})
	events := a.startInputPolling()
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()
	defer close(a.done)

	for {
		batch := input.NewBatch(a.collect(events), a.scr.Width())

		if batch.Quit() != nil {
			a.logger.Info("quit requested")
			return ErrQuit
		}
		if batch.Fullscreen() != nil {
			a.win.ToggleFullscreen()
		}
		if batch.UnpausePrinter() != nil && a.Printer != nil {
			a.logger.Info("unpausing printer")
			a.Printer.Unpause()
		}
		if ev := batch.Resize(); ev != nil {
			a.win.Resize()
		}

		select {
		case <-a.reload:
			if err := a.reinitialize(); err != nil {
				return err
			}
		default:
		}

		if err := a.machine.Process(batch); err != nil {
			// No failsafe net (or the failsafe itself failed): the
			// error is fatal to the loop.
			a.logger.Error("host loop stopping: %v", err)
			return err
		}

		<-ticker.C
	}
}

// collect drains all pending raw events without blocking. A tick with no
// input yields an empty batch.
func (a *Application) collect(events <-chan input.Event) []input.Event {
	var out []input.Event
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case ev := <-a.posted:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// startInputPolling reads screen events on a goroutine. PollEvent blocks;
// Screen.Interrupt (called during shutdown) unblocks it.
func (a *Application) startInputPolling() <-chan input.Event {
	events := make(chan input.Event, 100)

	go func() {
		defer close(events)
		for a.running.Load() {
			ev, ok := a.scr.PollEvent()
			if !a.running.Load() {
				return
			}
			if !ok {
				continue
			}
			select {
			case events <- ev:
			case <-a.done:
				return
			}
		}
	}()

	return events
}

// reinitialize reloads the configuration from disk and re-applies it,
// returning the kiosk to the wait screen, as after closing a settings
// menu.
func (a *Application) reinitialize() error {
	a.logger.Info("configuration changed, re-initializing")

	cfg, err := a.cfg.Reload()
	if err != nil {
		a.logger.Warn("config reload failed, keeping previous: %v", err)
	} else {
		*a.cfg = *cfg
	}

	if err := a.initialize(); err != nil {
		return err
	}
	return a.machine.SetState("wait")
}
