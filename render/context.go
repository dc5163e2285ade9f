package render

import (
	"time"

	"github.com/lixenwraith/skirmish/engine"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

// Context is the frame state handed to every renderer
// Built once per frame on the main loop; renderers read, never write
type Context struct {
	Now time.Time

	Session  *engine.Session
	Snapshot *world.Snapshot
	DevData  *world.DevData

	// Box is the in-progress selection rectangle in screen pixels
	Box BoxState

	// FPS is the locally measured render rate
	FPS float64
}

// BoxState mirrors input.Machine.SelectionBox
type BoxState struct {
	Start, End vmath.Vec2
	Active     bool
}
