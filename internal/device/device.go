// Package device defines the kiosk's hardware boundary: camera, printer
// and lights. The engine only sees these interfaces; real drivers live
// behind them and the shipped implementations are mocks, matching how the
// kiosk falls back to mock GPIO when not running on real hardware.
package device

import "github.com/dshills/photobooth/internal/input"

// Poster posts device-originated events into the host loop, such as
// physical button presses and printer queue updates.
type Poster interface {
	Post(ev input.Event)
}

// Camera captures pictures.
type Camera interface {
	// StartPreview begins showing the live camera feed.
	StartPreview() error

	// StopPreview stops the live feed. Safe to call when not previewing.
	StopPreview()

	// Capture takes one picture and writes it under dir with the given
	// base name, returning the full path of the written file.
	Capture(dir, name string) (string, error)
}

// Printer prints pictures and reports queue status.
type Printer interface {
	// IsInstalled reports whether a printer is configured at all.
	IsInstalled() bool

	// IsReady reports whether printing is currently possible (installed,
	// not paused, pages remaining).
	IsReady() bool

	// Print queues one picture for printing.
	Print(path string) error

	// Tasks returns the number of queued print tasks.
	Tasks() int

	// Pause and Unpause stop and resume print processing.
	Pause()
	Unpause()
}

// Lights drives the LED board: the capture and printer indicator LEDs
// and the flash.
type Lights interface {
	// CaptureLED and PrinterLED switch the indicator LEDs.
	CaptureLED(on bool)
	PrinterLED(on bool)

	// Flash switches the flash LED.
	Flash(on bool)

	// Off switches everything off.
	Off()
}
