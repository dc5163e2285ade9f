package input

// EventType discriminates host-neutral input events
type EventType uint8

const (
	EventNone EventType = iota
	EventPointerDown
	EventPointerUp
	EventPointerMove
	EventWheel
	EventKey
	EventResize
	EventClosed
)

// Button identifies the pointer button of a down/up event
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

// Event is what a host surface (terminal or window) translates its native events into
// Coordinates are screen pixels relative to the drawing surface origin
type Event struct {
	Type   EventType
	Button Button
	X, Y   float64
	Alt    bool

	// Wheel: positive scrolls down (zoom out)
	DeltaY float64

	// Key: normalized name, see NormalizeKey
	Key string

	// Resize: new surface size in pixels
	Width, Height float64
}
