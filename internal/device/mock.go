package device

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dshills/photobooth/internal/input"
)

// MockCamera writes placeholder picture files instead of driving real
// capture hardware.
type MockCamera struct {
	mu         sync.Mutex
	previewing bool
	captures   int
}

// NewMockCamera creates a mock camera.
func NewMockCamera() *MockCamera {
	return &MockCamera{}
}

// StartPreview implements Camera.
func (c *MockCamera) StartPreview() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previewing = true
	return nil
}

// StopPreview implements Camera.
func (c *MockCamera) StopPreview() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.previewing = false
}

// Previewing reports whether the preview is running.
func (c *MockCamera) Previewing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.previewing
}

// Captures returns the number of captures taken.
func (c *MockCamera) Captures() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.captures
}

// Capture implements Camera by writing a small placeholder file.
func (c *MockCamera) Capture(dir, name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating capture directory: %w", err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("mock capture\n"), 0o644); err != nil {
		return "", fmt.Errorf("writing capture: %w", err)
	}
	c.captures++
	return path, nil
}

// MockPrinter simulates a print queue: Print copies the picture into an
// outbox directory and the task completes immediately, posting a queue
// update event so the wait screen refreshes its badge.
type MockPrinter struct {
	mu        sync.Mutex
	name      string
	outbox    string
	poster    Poster
	paused    bool
	tasks     int
	printed   int
	maxPages  int
	installed bool
}

// NewMockPrinter creates a mock printer writing into outbox. An empty
// printer name means no printer is installed. maxPages < 0 means
// unlimited.
func NewMockPrinter(name, outbox string, maxPages int, poster Poster) *MockPrinter {
	return &MockPrinter{
		name:      name,
		outbox:    outbox,
		poster:    poster,
		maxPages:  maxPages,
		installed: name != "",
	}
}

// IsInstalled implements Printer.
func (p *MockPrinter) IsInstalled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.installed
}

// IsReady implements Printer.
func (p *MockPrinter) IsReady() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready()
}

func (p *MockPrinter) ready() bool {
	if !p.installed || p.paused {
		return false
	}
	return p.maxPages < 0 || p.printed < p.maxPages
}

// Print implements Printer.
func (p *MockPrinter) Print(path string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.ready() {
		return fmt.Errorf("printer %q not ready", p.name)
	}
	if err := os.MkdirAll(p.outbox, 0o755); err != nil {
		return fmt.Errorf("creating outbox: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading picture %s: %w", path, err)
	}
	out := filepath.Join(p.outbox, fmt.Sprintf("print-%03d-%s", p.printed+1, filepath.Base(path)))
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("printing to %s: %w", out, err)
	}

	p.printed++
	p.notify()
	return nil
}

// Tasks implements Printer. The mock queue drains instantly.
func (p *MockPrinter) Tasks() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.tasks
}

// Printed returns the number of completed prints.
func (p *MockPrinter) Printed() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.printed
}

// Pause implements Printer.
func (p *MockPrinter) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = true
	p.notify()
}

// Unpause implements Printer.
func (p *MockPrinter) Unpause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.paused = false
	p.notify()
}

func (p *MockPrinter) notify() {
	if p.poster != nil {
		p.poster.Post(input.Event{Type: input.EventPrinterStatus})
	}
}

// MockLights records LED state in memory.
type MockLights struct {
	mu      sync.Mutex
	capture bool
	printer bool
	flash   bool
}

// NewMockLights creates a mock LED board.
func NewMockLights() *MockLights {
	return &MockLights{}
}

// CaptureLED implements Lights.
func (l *MockLights) CaptureLED(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.capture = on
}

// PrinterLED implements Lights.
func (l *MockLights) PrinterLED(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.printer = on
}

// Flash implements Lights.
func (l *MockLights) Flash(on bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.flash = on
}

// Off implements Lights.
func (l *MockLights) Off() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.capture = false
	l.printer = false
	l.flash = false
}

// FlashOn reports the flash LED state.
func (l *MockLights) FlashOn() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.flash
}

// State returns the capture and printer LED states.
func (l *MockLights) State() (capture, printer bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.capture, l.printer
}
