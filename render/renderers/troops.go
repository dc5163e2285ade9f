package renderers

import (
	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

// Troop glyph geometry in world units
const (
	TroopSize       = 10.0
	healthBarWidth  = TroopSize * 1.5
	healthBarHeight = 2.0
	healthBarOffset = -TroopSize - 5
)

// TroopsRenderer draws every troop: health bar, shape, direction tick
type TroopsRenderer struct{}

// NewTroopsRenderer creates the troop layer
func NewTroopsRenderer() *TroopsRenderer {
	return &TroopsRenderer{}
}

// Render implements render.Renderer
func (r *TroopsRenderer) Render(ctx *render.Context, s render.Surface) {
	s.SetTransform(ctx.Session.Camera.Transform())
	for i := range ctx.Snapshot.Troops {
		drawTroop(s, &ctx.Snapshot.Troops[i])
	}
}

func drawTroop(s render.Surface, t *world.Troop) {
	x, y := t.Position.X, t.Position.Y

	// Health bar: red background, green proportional overlay
	bx, by := x-healthBarWidth/2, y+healthBarOffset
	s.FillRect(bx, by, healthBarWidth, healthBarHeight, render.ColorHealthLost)
	if f := t.HealthFraction(); f > 0 {
		s.FillRect(bx, by, healthBarWidth*f, healthBarHeight, render.ColorHealthLeft)
	}

	c := render.FromWorld(t.Color)
	half := TroopSize / 2
	switch t.Shape.Normalize() {
	case world.ShapeCircle:
		s.FillPath(render.NewPath().Circle(x, y, half), c)
	case world.ShapeTriangle:
		s.FillPath(render.NewPath().Polygon(
			vmath.V2(x, y-half),
			vmath.V2(x+half, y+half),
			vmath.V2(x-half, y+half),
		), c)
	default:
		s.FillRect(x-half, y-half, TroopSize, TroopSize, c)
	}

	tip := t.Position.Add(t.Direction.Scale(TroopSize))
	s.StrokeLine(x, y, tip.X, tip.Y, 1, render.ColorDirection)
}
