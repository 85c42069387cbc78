package builtin

import (
	"path/filepath"
	"testing"

	"github.com/dshills/photobooth/internal/app"
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

type eventSink struct {
	events []input.Event
}

func (s *eventSink) Post(ev input.Event) {
	s.events = append(s.events, ev)
}

// booth wires the core plugins into a machine around mock devices, the
// same shape the application builds at startup.
type booth struct {
	cfg     *config.Config
	app     *app.Application
	machine *fsm.Machine
	camera  *device.MockCamera
	printer *device.MockPrinter
	lights  *device.MockLights
}

func newBooth(t *testing.T, cfg *config.Config) *booth {
	t.Helper()

	cfg.General.Directory = t.TempDir()

	count, err := counters.Load(filepath.Join(t.TempDir(), "counters.json"), cfg.Printer.MaxDuplicates)
	if err != nil {
		t.Fatalf("load counters: %v", err)
	}

	cam := device.NewMockCamera()
	prn := device.NewMockPrinter("mock", t.TempDir(), cfg.Printer.MaxPages, &eventSink{})
	lights := device.NewMockLights()

	a := &app.Application{
		CaptureChoices: cfg.Picture.Captures,
		Count:          count,
		Camera:         cam,
		Printer:        prn,
		Lights:         lights,
		FlashEnabled:   cfg.Flash.Enable,
	}

	scr := screen.NewSimulation(90, 24)
	win := view.New(scr, cfg.Window.Background, cfg.Window.TextColor)

	registry := hook.NewRegistry()
	registry.Register(NewViewPlugin(log.Discard()))
	registry.Register(NewCameraPlugin(log.Discard()))
	registry.Register(NewPicturePlugin(log.Discard()))
	registry.Register(NewPrinterPlugin(log.Discard()))
	registry.Register(NewLightsPlugin())

	base := hook.Context{hook.KeyConfig: cfg, hook.KeyApp: a, hook.KeyWindow: win}
	machine := fsm.New(hook.NewDispatcher(registry), base, log.Discard())
	for _, name := range []string{"wait", "choose", "chosen", "preview", "capture", "processing", "print"} {
		if err := machine.AddState(name); err != nil {
			t.Fatalf("add state %s: %v", name, err)
		}
	}
	if err := machine.SetState("wait"); err != nil {
		t.Fatalf("set initial state: %v", err)
	}

	return &booth{cfg: cfg, app: a, machine: machine, camera: cam, printer: prn, lights: lights}
}

func (b *booth) tick(t *testing.T, events ...input.Event) {
	t.Helper()
	if err := b.machine.Process(input.NewBatch(events, 90)); err != nil {
		t.Fatalf("process in state %s: %v", b.machine.Current(), err)
	}
}

func (b *booth) wantState(t *testing.T, want string) {
	t.Helper()
	if got := b.machine.Current(); got != want {
		t.Fatalf("state = %s, want %s", got, want)
	}
}

func TestSingleCaptureSession(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 0 // skip the chosen layout screen
	cfg.Flash.Enable = true
	b := newBooth(t, cfg)

	// Idle ticks keep the booth on the wait screen.
	b.tick(t)
	b.wantState(t, "wait")
	if capLED, _ := b.lights.State(); !capLED {
		t.Error("capture LED should be lit on the wait screen")
	}

	// A center touch starts a session.
	b.tick(t, input.PointerEvent(45, 10))
	b.wantState(t, "choose")
	if b.app.CaptureNbr != 0 {
		t.Fatalf("CaptureNbr = %d before any choice", b.app.CaptureNbr)
	}

	// Left picks the first choice (one capture) and moves on.
	b.tick(t, input.ButtonEvent(input.ButtonLeft))
	b.wantState(t, "preview")
	if b.app.CaptureNbr != 1 {
		t.Fatalf("CaptureNbr = %d, want 1", b.app.CaptureNbr)
	}
	if b.app.CaptureDate == "" {
		t.Error("capture date not stamped at first preview")
	}
	if !b.camera.Previewing() {
		t.Error("camera preview not started")
	}
	if b.app.FlashEnabled && b.lights.FlashOn() {
		t.Error("flash lit before the chosen state")
	}

	// Preview hands over to capture on the next tick.
	b.tick(t)
	b.wantState(t, "capture")
	if b.camera.Previewing() {
		t.Error("camera preview still running in capture state")
	}

	// One capture completes the sequence.
	b.tick(t)
	b.wantState(t, "processing")
	if got := b.camera.Captures(); got != 1 {
		t.Fatalf("captures = %d, want 1", got)
	}

	// Processing assembles the picture and proposes printing.
	b.tick(t)
	b.wantState(t, "print")
	if b.app.PreviousPicture == "" {
		t.Fatal("no picture assembled")
	}
	if got := b.app.Count.Taken(); got != 1 {
		t.Errorf("taken counter = %d, want 1", got)
	}
	if got := b.app.Count.RemainingDuplicates(); got != cfg.Printer.MaxDuplicates {
		t.Errorf("remaining duplicates = %d, want %d", got, cfg.Printer.MaxDuplicates)
	}
	if len(b.app.Captures) != 0 {
		t.Errorf("raw captures not discarded after processing: %v", b.app.Captures)
	}

	// A right press prints the picture and returns to the wait screen.
	b.tick(t, input.ButtonEvent(input.ButtonRight))
	b.wantState(t, "wait")
	if got := b.printer.Printed(); got != 1 {
		t.Errorf("printed jobs = %d, want 1", got)
	}
	if got := b.app.Count.Printed(); got != 1 {
		t.Errorf("printed counter = %d, want 1", got)
	}
	if got := b.app.Count.RemainingDuplicates(); got != cfg.Printer.MaxDuplicates-1 {
		t.Errorf("remaining duplicates = %d, want %d", got, cfg.Printer.MaxDuplicates-1)
	}
	if got := b.app.Count.Forgotten(); got != 0 {
		t.Errorf("forgotten counter = %d, want 0", got)
	}
}

func TestMultiCaptureAlternatesPreviewAndCapture(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 0
	b := newBooth(t, cfg)

	b.tick(t, input.PointerEvent(45, 10))
	b.wantState(t, "choose")

	// Right picks the last choice (four captures).
	b.tick(t, input.ButtonEvent(input.ButtonRight))
	b.wantState(t, "preview")
	if b.app.CaptureNbr != 4 {
		t.Fatalf("CaptureNbr = %d, want 4", b.app.CaptureNbr)
	}

	for shot := 1; shot <= 4; shot++ {
		b.wantState(t, "preview")
		b.tick(t)
		b.wantState(t, "capture")
		b.tick(t)
		if got := b.camera.Captures(); got != shot {
			t.Fatalf("captures after shot %d = %d", shot, got)
		}
	}
	b.wantState(t, "processing")
	if got := len(b.app.Captures); got != 4 {
		t.Fatalf("session captures = %d, want 4", got)
	}
}

func TestChooseTimeoutReturnsToWait(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChooseTimeoutSec = 0 // expire immediately
	b := newBooth(t, cfg)

	b.tick(t, input.PointerEvent(45, 10))
	b.wantState(t, "choose")
	b.tick(t)
	b.wantState(t, "wait")
	if b.app.CaptureNbr != 0 {
		t.Errorf("CaptureNbr = %d after timeout", b.app.CaptureNbr)
	}
}

func TestChosenDelayShowsLayoutScreen(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 3600 // hold the chosen screen
	cfg.Flash.Enable = true
	b := newBooth(t, cfg)

	b.tick(t, input.PointerEvent(45, 10))
	b.tick(t, input.ButtonEvent(input.ButtonLeft))
	b.wantState(t, "chosen")
	if !b.lights.FlashOn() {
		t.Error("flash not lit on the chosen screen")
	}
	b.tick(t)
	b.wantState(t, "chosen")
}

func TestPrintTimeoutCountsForgotten(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 0
	cfg.Printer.DelaySec = 1e-9 // expire on the next tick
	b := newBooth(t, cfg)

	b.tick(t, input.PointerEvent(45, 10))
	b.tick(t, input.ButtonEvent(input.ButtonLeft))
	b.tick(t) // preview -> capture
	b.tick(t) // capture -> processing
	b.tick(t) // processing -> print
	b.wantState(t, "print")

	b.tick(t)
	b.wantState(t, "wait")
	if got := b.app.Count.Forgotten(); got != 1 {
		t.Errorf("forgotten counter = %d, want 1", got)
	}
	if got := b.printer.Printed(); got != 0 {
		t.Errorf("printed jobs = %d, want 0", got)
	}
}

func TestZeroPrinterDelaySkipsPrintScreen(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 0
	cfg.Printer.DelaySec = 0
	b := newBooth(t, cfg)

	b.tick(t, input.PointerEvent(45, 10))
	b.tick(t, input.ButtonEvent(input.ButtonLeft))
	b.tick(t) // preview -> capture
	b.tick(t) // capture -> processing
	b.tick(t) // processing -> wait, print skipped
	b.wantState(t, "wait")
	if b.app.PreviousPicture == "" {
		t.Error("picture should still be assembled when printing is disabled")
	}
}

func TestPrintFromWaitScreen(t *testing.T) {
	cfg := config.Default()
	cfg.Window.ChosenDelaySec = 0
	cfg.Printer.DelaySec = 1e-9
	b := newBooth(t, cfg)

	// Run one session through to the wait screen without printing.
	b.tick(t, input.PointerEvent(45, 10))
	b.tick(t, input.ButtonEvent(input.ButtonLeft))
	b.tick(t)
	b.tick(t)
	b.tick(t)
	b.tick(t)
	b.wantState(t, "wait")

	// The previous picture stays printable from the wait screen.
	b.tick(t, input.ButtonEvent(input.ButtonRight))
	b.wantState(t, "wait")
	if got := b.printer.Printed(); got != 1 {
		t.Errorf("printed jobs = %d, want 1", got)
	}
}

func TestPickChoice(t *testing.T) {
	choices := []int{1, 2, 4}
	tests := []struct {
		name string
		dir  input.Direction
		want int
		ok   bool
	}{
		{"left picks first", input.DirectionLeft, 1, true},
		{"center picks middle", input.DirectionCenter, 2, true},
		{"right picks last", input.DirectionRight, 4, true},
		{"none picks nothing", input.DirectionNone, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := pickChoice(choices, tt.dir)
			if got != tt.want || ok != tt.ok {
				t.Errorf("pickChoice(%v) = %d, %v, want %d, %v", tt.dir, got, ok, tt.want, tt.ok)
			}
		})
	}
	if _, ok := pickChoice(nil, input.DirectionLeft); ok {
		t.Error("pickChoice with no choices should pick nothing")
	}
}
