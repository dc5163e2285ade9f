package input

import "github.com/lixenwraith/skirmish/vmath"

// gesture holds the screen-space bookkeeping of the gesture in progress
// The gesture kind itself lives on the session so the renderer can read it
type gesture struct {
	// DraggingCamera: pointer position at the previous move
	anchor vmath.Vec2

	// BoxSelecting: corners in screen pixels
	boxStart vmath.Vec2
	boxEnd   vmath.Vec2

	// RightDragMoving: world target of the last emitted move
	lastTarget    vmath.Vec2
	hasLastTarget bool
}

func (g *gesture) reset() {
	*g = gesture{}
}
