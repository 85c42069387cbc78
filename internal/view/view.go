// Package view renders the kiosk screens.
//
// Screens are deliberately plain: centered text banners on a solid
// background. All sequencing decisions live in plugins; the view only
// draws what it is told and remembers nothing between calls except the
// current style and the last drawn screen name (for tests and logs).
package view

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/dshills/photobooth/internal/screen"
)

// Window is the presentation surface shared with plugins through the
// dispatch context.
type Window struct {
	scr *screen.Screen

	style      tcell.Style
	fullscreen bool

	// lastScreen names the most recently drawn screen.
	lastScreen string

	// printNumber badge state
	printTasks  int
	printPaused bool
}

// New creates a window drawing on the given screen, with colors taken
// from the configured background and text #RRGGBB values.
func New(scr *screen.Screen, background, textColor string) *Window {
	style := tcell.StyleDefault.
		Background(screen.ParseColor(background)).
		Foreground(screen.ParseColor(textColor))
	return &Window{scr: scr, style: style}
}

// SetColors replaces the window colors, applied from the next draw.
func (w *Window) SetColors(background, textColor string) {
	w.style = tcell.StyleDefault.
		Background(screen.ParseColor(background)).
		Foreground(screen.ParseColor(textColor))
}

// Size returns the display size.
func (w *Window) Size() (int, int) {
	return w.scr.Size()
}

// Resize redraws after a display size change.
func (w *Window) Resize() {
	w.scr.Sync()
}

// ToggleFullscreen flips the fullscreen flag. A terminal kiosk always
// covers the whole terminal, so this only tracks intent for the config
// round trip.
func (w *Window) ToggleFullscreen() {
	w.fullscreen = !w.fullscreen
}

// IsFullscreen reports the fullscreen flag.
func (w *Window) IsFullscreen() bool {
	return w.fullscreen
}

// LastScreen names the most recently drawn screen.
func (w *Window) LastScreen() string {
	return w.lastScreen
}

// ShowIntro draws the wait screen. previous names the last picture file
// (empty when none); printerReady greys the print hint when false.
func (w *Window) ShowIntro(previous string, printerReady bool) {
	lines := []string{
		"PHOTOBOOTH",
		"",
		"press the center button to start",
	}
	if previous != "" {
		lines = append(lines, "", "last picture: "+previous)
	}
	if !printerReady {
		lines = append(lines, "", "printer unavailable")
	}
	w.draw("intro", lines)
}

// ShowChoice draws the capture-count choice screen. selected is zero
// while nothing is picked.
func (w *Window) ShowChoice(choices []int, selected int) {
	row := make([]string, 0, len(choices))
	for _, n := range choices {
		label := fmt.Sprintf("[ %d ]", n)
		if n == selected {
			label = fmt.Sprintf(">[ %d ]<", n)
		}
		row = append(row, label)
	}
	w.draw("choice", []string{
		"how many pictures?",
		"",
		strings.Join(row, "   "),
	})
}

// ShowCaptureNumber draws the capture progress screen.
func (w *Window) ShowCaptureNumber(current, total int) {
	w.draw("capture", []string{
		fmt.Sprintf("picture %d / %d", current, total),
		"",
		"smile!",
	})
}

// ShowWork draws the processing screen.
func (w *Window) ShowWork() {
	w.draw("processing", []string{"assembling your picture..."})
}

// ShowPrint draws the print proposal screen for the given picture file.
func (w *Window) ShowPrint(picture string) {
	w.draw("print", []string{
		"your picture: " + picture,
		"",
		"press the right button to print",
	})
}

// ShowOops draws the failure screen.
func (w *Window) ShowOops() {
	w.draw("oops", []string{
		"oops, something went wrong",
		"",
		"restarting...",
	})
}

// ShowImage draws a picture placeholder, or clears the display when path
// is empty.
func (w *Window) ShowImage(path string) {
	if path == "" {
		w.lastScreen = ""
		w.scr.Clear(w.style)
		w.scr.Show()
		return
	}
	w.draw("image", []string{path})
}

// SetPrintNumber updates the printer badge in the bottom-right corner:
// the number of queued tasks, and whether the printer is paused.
func (w *Window) SetPrintNumber(tasks int, paused bool) {
	w.printTasks = tasks
	w.printPaused = paused
	w.drawBadge()
	w.scr.Show()
}

// draw clears the display and centers the lines vertically.
func (w *Window) draw(name string, lines []string) {
	w.lastScreen = name
	w.scr.Clear(w.style)

	width, height := w.scr.Size()
	top := height/2 - len(lines)/2
	for i, line := range lines {
		w.drawCentered(top+i, width, line)
	}
	w.drawBadge()
	w.scr.Show()
}

// drawCentered draws one line horizontally centered using display width,
// not byte length, so wide runes line up.
func (w *Window) drawCentered(y, width int, line string) {
	if y < 0 {
		return
	}
	x := (width - runewidth.StringWidth(line)) / 2
	if x < 0 {
		x = 0
	}
	for _, r := range line {
		w.scr.SetContent(x, y, r, w.style)
		x += runewidth.RuneWidth(r)
	}
}

func (w *Window) drawBadge() {
	if w.printTasks <= 0 && !w.printPaused {
		return
	}
	badge := fmt.Sprintf("prints: %d", w.printTasks)
	if w.printPaused {
		badge += " (paused)"
	}
	width, height := w.scr.Size()
	x := width - runewidth.StringWidth(badge) - 1
	if x < 0 {
		x = 0
	}
	for _, r := range badge {
		w.scr.SetContent(x, height-1, r, w.style)
		x += runewidth.RuneWidth(r)
	}
}
