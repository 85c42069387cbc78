// Package screen wraps the terminal in a drawing surface and raw event
// source for the kiosk. It is the only package that talks to tcell.
package screen

import (
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/dshills/photobooth/internal/input"
)

// Screen owns the terminal display.
type Screen struct {
	mu sync.Mutex
	tc tcell.Screen

	// lastButtons tracks pressed mouse buttons so a release can be
	// detected; the kiosk reacts to releases, not presses.
	lastButtons tcell.ButtonMask
}

// New creates a screen on the real terminal.
func New() (*Screen, error) {
	tc, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &Screen{tc: tc}, nil
}

// NewSimulation creates an off-screen surface for tests.
func NewSimulation(width, height int) *Screen {
	sim := tcell.NewSimulationScreen("UTF-8")
	_ = sim.Init()
	sim.SetSize(width, height)
	return &Screen{tc: sim}
}

// Init takes over the terminal and enables mouse reporting.
func (s *Screen) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.tc.Init(); err != nil {
		return err
	}
	s.tc.EnableMouse()
	s.tc.HideCursor()
	return nil
}

// Fini restores the terminal.
func (s *Screen) Fini() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tc.Fini()
}

// Size returns the display size in cells.
func (s *Screen) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tc.Size()
}

// Width returns the display width in cells.
func (s *Screen) Width() int {
	w, _ := s.Size()
	return w
}

// Clear fills the whole display with the given style.
func (s *Screen) Clear(style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()

	w, h := s.tc.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			s.tc.SetContent(x, y, ' ', nil, style)
		}
	}
}

// SetContent places one rune.
func (s *Screen) SetContent(x, y int, r rune, style tcell.Style) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tc.SetContent(x, y, r, nil, style)
}

// Show flushes pending drawing to the terminal.
func (s *Screen) Show() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tc.Show()
}

// Sync forces a full repaint, used after a resize.
func (s *Screen) Sync() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tc.Sync()
}

// Interrupt unblocks a pending PollEvent, used during shutdown.
func (s *Screen) Interrupt() {
	_ = s.tc.PostEvent(tcell.NewEventInterrupt(nil))
}

// PollEvent blocks for the next raw event and converts it to the kiosk
// event model. It returns ok=false for events the kiosk does not consume
// (and on interrupt).
func (s *Screen) PollEvent() (input.Event, bool) {
	ev := s.tc.PollEvent()
	if ev == nil {
		return input.Event{}, false
	}
	return s.convert(ev)
}

func (s *Screen) convert(ev tcell.Event) (input.Event, bool) {
	switch tev := ev.(type) {
	case *tcell.EventKey:
		return convertKey(tev)
	case *tcell.EventMouse:
		return s.convertMouse(tev)
	case *tcell.EventResize:
		w, h := tev.Size()
		return input.ResizeEvent(w, h), true
	}
	return input.Event{}, false
}

func convertKey(ev *tcell.EventKey) (input.Event, bool) {
	switch ev.Key() {
	case tcell.KeyEscape:
		return input.KeyEvent(input.KeyEscape), true
	case tcell.KeyEnter:
		return input.KeyEvent(input.KeyEnter), true
	case tcell.KeyLeft:
		return input.KeyEvent(input.KeyLeft), true
	case tcell.KeyRight:
		return input.KeyEvent(input.KeyRight), true
	case tcell.KeyUp:
		return input.KeyEvent(input.KeyUp), true
	case tcell.KeyDown:
		return input.KeyEvent(input.KeyDown), true
	case tcell.KeyCtrlC:
		return input.Event{Type: input.EventQuit}, true
	case tcell.KeyRune:
		return input.RuneEvent(ev.Rune()), true
	}
	return input.Event{}, false
}

// convertMouse reports a pointer release when all buttons go up after a
// press. Motion and press events are dropped.
func (s *Screen) convertMouse(ev *tcell.EventMouse) (input.Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buttons := ev.Buttons() & tcell.ButtonMask(0xff)
	pressed := s.lastButtons
	s.lastButtons = buttons

	if pressed != tcell.ButtonNone && buttons == tcell.ButtonNone {
		x, y := ev.Position()
		return input.PointerEvent(x, y), true
	}
	return input.Event{}, false
}

// ParseColor converts a #RRGGBB config value to a terminal color.
// Malformed values fall back to black.
func ParseColor(hex string) tcell.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		return tcell.ColorBlack
	}
	r, g, b := c.RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}
