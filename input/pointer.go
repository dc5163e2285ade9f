package input

// Buttons is the set of pointer buttons currently held
type Buttons uint8

const (
	HeldLeft Buttons = 1 << iota
	HeldRight
	HeldMiddle
)

var heldButtons = []struct {
	mask   Buttons
	button Button
}{
	{HeldLeft, ButtonLeft},
	{HeldRight, ButtonRight},
	{HeldMiddle, ButtonMiddle},
}

// PointerTracker turns polled pointer state into down/up/move events
// Hosts that report held buttons rather than transitions feed it once per poll
type PointerTracker struct {
	held Buttons
	x, y float64
	seen bool
}

// Update emits a move when the position changed, then releases, then presses
func (p *PointerTracker) Update(x, y float64, held Buttons, alt bool) []Event {
	var out []Event
	if !p.seen || x != p.x || y != p.y {
		out = append(out, Event{Type: EventPointerMove, X: x, Y: y, Alt: alt})
	}
	p.seen, p.x, p.y = true, x, y

	for _, b := range heldButtons {
		if p.held&b.mask != 0 && held&b.mask == 0 {
			out = append(out, Event{Type: EventPointerUp, Button: b.button, X: x, Y: y, Alt: alt})
		}
	}
	for _, b := range heldButtons {
		if held&b.mask != 0 && p.held&b.mask == 0 {
			out = append(out, Event{Type: EventPointerDown, Button: b.button, X: x, Y: y, Alt: alt})
		}
	}
	p.held = held
	return out
}

// Position returns the last reported pointer position
func (p *PointerTracker) Position() (x, y float64) {
	return p.x, p.y
}
