package screen

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/photobooth/internal/input"
)

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want input.Event
		ok   bool
	}{
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), input.KeyEvent(input.KeyEscape), true},
		{"left arrow", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), input.KeyEvent(input.KeyLeft), true},
		{"up arrow", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), input.KeyEvent(input.KeyUp), true},
		{"rune q", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), input.RuneEvent('q'), true},
		{"ctrl-c quits", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), input.Event{Type: input.EventQuit}, true},
		{"function key dropped", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), input.Event{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := convertKey(tt.ev)
			if ok != tt.ok {
				t.Fatalf("convertKey() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("convertKey() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertMouseReleaseOnly(t *testing.T) {
	s := NewSimulation(100, 30)

	press := tcell.NewEventMouse(10, 5, tcell.Button1, tcell.ModNone)
	if _, ok := s.convertMouse(press); ok {
		t.Error("press reported as pointer event")
	}

	release := tcell.NewEventMouse(12, 6, tcell.ButtonNone, tcell.ModNone)
	got, ok := s.convertMouse(release)
	if !ok {
		t.Fatal("release not reported")
	}
	if got.Type != input.EventPointer || got.X != 12 || got.Y != 6 {
		t.Errorf("release event = %+v", got)
	}

	// Motion with no button held is not a release.
	motion := tcell.NewEventMouse(20, 6, tcell.ButtonNone, tcell.ModNone)
	if _, ok := s.convertMouse(motion); ok {
		t.Error("motion reported as pointer event")
	}
}

func TestConvertResize(t *testing.T) {
	s := NewSimulation(100, 30)
	got, ok := s.convert(tcell.NewEventResize(80, 24))
	if !ok {
		t.Fatal("resize not converted")
	}
	if got.Type != input.EventResize || got.Width != 80 || got.Height != 24 {
		t.Errorf("resize event = %+v", got)
	}
}

func TestConvertDropsForeignEvents(t *testing.T) {
	s := NewSimulation(100, 30)
	if _, ok := s.convert(tcell.NewEventInterrupt(time.Now())); ok {
		t.Error("interrupt event converted")
	}
}

func TestParseColor(t *testing.T) {
	if got := ParseColor("#ff0000"); got != tcell.NewRGBColor(255, 0, 0) {
		t.Errorf("ParseColor(#ff0000) = %v", got)
	}
	if got := ParseColor("not-a-color"); got != tcell.ColorBlack {
		t.Errorf("ParseColor(bad) = %v, want black fallback", got)
	}
}
