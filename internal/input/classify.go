package input

// Direction is a semantic navigation intent.
type Direction int

const (
	DirectionNone Direction = iota
	DirectionLeft
	DirectionCenter
	DirectionRight
)

// String returns a string representation of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionCenter:
		return "center"
	case DirectionRight:
		return "right"
	default:
		return "none"
	}
}

// Zone maps a pointer x coordinate to a direction by partitioning the
// display into three equal horizontal zones. Boundaries sit at width/3
// and 2*width/3; a coordinate on a boundary belongs to the zone to its
// right, matching the original touch layout.
func Zone(x, width int) Direction {
	switch {
	case x < width/3:
		return DirectionLeft
	case x < (width/3)*2:
		return DirectionCenter
	default:
		return DirectionRight
	}
}

// Batch is the classified view over one tick's raw events, supplied to
// state hooks as the events context value. Classifiers return the first
// matching event, or nil when the batch contains no match.
type Batch struct {
	events []Event
	width  int
}

// NewBatch wraps the tick's raw events. width is the current display
// width, needed for pointer zone classification.
func NewBatch(events []Event, width int) *Batch {
	return &Batch{events: events, width: width}
}

// Events returns the underlying raw events.
func (b *Batch) Events() []Event {
	return b.events
}

// Len returns the number of raw events in the batch.
func (b *Batch) Len() int {
	return len(b.events)
}

// first returns the first event matching the predicate, or nil.
func (b *Batch) first(match func(Event) bool) *Event {
	for i := range b.events {
		if match(b.events[i]) {
			return &b.events[i]
		}
	}
	return nil
}

// Quit returns the first quit request: a host close event, or the escape
// or q key.
func (b *Batch) Quit() *Event {
	return b.first(func(ev Event) bool {
		if ev.Type == EventQuit {
			return true
		}
		return ev.Type == EventKey && (ev.Key == KeyEscape || (ev.Key == KeyRune && ev.Rune == 'q'))
	})
}

// Fullscreen returns the first fullscreen-toggle request (the f key).
func (b *Batch) Fullscreen() *Event {
	return b.first(func(ev Event) bool {
		return ev.Type == EventKey && ev.Key == KeyRune && ev.Rune == 'f'
	})
}

// UnpausePrinter returns the first printer-unpause request (the p key).
func (b *Batch) UnpausePrinter() *Event {
	return b.first(func(ev Event) bool {
		return ev.Type == EventKey && ev.Key == KeyRune && ev.Rune == 'p'
	})
}

// Resize returns the first display resize event.
func (b *Batch) Resize() *Event {
	return b.first(func(ev Event) bool {
		return ev.Type == EventResize
	})
}

// PrinterStatus returns the first printer queue update event.
func (b *Batch) PrinterStatus() *Event {
	return b.first(func(ev Event) bool {
		return ev.Type == EventPrinterStatus
	})
}

// Left returns the first left intent: left arrow key, pointer release in
// the left third of the display, or the left physical button.
func (b *Batch) Left() *Event {
	return b.directional(DirectionLeft)
}

// Center returns the first center intent: up or down arrow key, pointer
// release in the middle third, or the center physical button.
func (b *Batch) Center() *Event {
	return b.directional(DirectionCenter)
}

// Right returns the first right intent: right arrow key, pointer release
// in the right third, or the right physical button.
func (b *Batch) Right() *Event {
	return b.directional(DirectionRight)
}

// Choice classifies the first directional event of any kind, as used by
// the choose screen where every input picks or cycles an option.
func (b *Batch) Choice() Direction {
	for _, ev := range b.events {
		if d := b.classify(ev); d != DirectionNone {
			return d
		}
	}
	return DirectionNone
}

func (b *Batch) directional(want Direction) *Event {
	return b.first(func(ev Event) bool {
		return b.classify(ev) == want
	})
}

// classify maps one raw event to a direction, or DirectionNone.
func (b *Batch) classify(ev Event) Direction {
	switch ev.Type {
	case EventKey:
		switch ev.Key {
		case KeyLeft:
			return DirectionLeft
		case KeyUp, KeyDown:
			return DirectionCenter
		case KeyRight:
			return DirectionRight
		}
	case EventPointer:
		return Zone(ev.X, b.width)
	case EventButton:
		switch ev.Button {
		case ButtonLeft:
			return DirectionLeft
		case ButtonCenter:
			return DirectionCenter
		case ButtonRight:
			return DirectionRight
		}
	}
	return DirectionNone
}
