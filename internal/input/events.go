package input

// EventType identifies the type of a raw kiosk event.
type EventType int

const (
	EventNone EventType = iota
	// EventKey is a keyboard key press.
	EventKey
	// EventPointer is a pointer or touch release on the display.
	EventPointer
	// EventResize is a display size change.
	EventResize
	// EventButton is a physical button press (GPIO board).
	EventButton
	// EventPrinterStatus signals that the printer task queue changed.
	EventPrinterStatus
	// EventQuit is a host-initiated close request (signal, window close).
	EventQuit
)

// Key represents a keyboard key. Printable keys use KeyRune with the Rune
// field set.
type Key int

const (
	KeyNone Key = iota
	KeyRune
	KeyEscape
	KeyEnter
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// Button identifies a physical button on the control board.
type Button int

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonCenter
	ButtonRight
)

// Event represents one raw event collected during a tick.
type Event struct {
	Type EventType

	// Key event fields
	Key  Key
	Rune rune

	// Pointer event fields (release position)
	X, Y int

	// Resize event fields
	Width, Height int

	// Button event field
	Button Button
}

// KeyEvent builds a special-key press event.
func KeyEvent(k Key) Event {
	return Event{Type: EventKey, Key: k}
}

// RuneEvent builds a printable-key press event.
func RuneEvent(r rune) Event {
	return Event{Type: EventKey, Key: KeyRune, Rune: r}
}

// PointerEvent builds a pointer release event at the given position.
func PointerEvent(x, y int) Event {
	return Event{Type: EventPointer, X: x, Y: y}
}

// ResizeEvent builds a display resize event.
func ResizeEvent(width, height int) Event {
	return Event{Type: EventResize, Width: width, Height: height}
}

// ButtonEvent builds a physical button press event.
func ButtonEvent(b Button) Event {
	return Event{Type: EventButton, Button: b}
}
