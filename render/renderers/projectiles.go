package renderers

import (
	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/vmath"
	"github.com/lixenwraith/skirmish/world"
)

const (
	arrowLength = 8.0
	arrowWidth  = 2.0
	arrowHead   = 4.0
)

// ProjectilesRenderer draws in-flight arrows oriented along their direction
type ProjectilesRenderer struct{}

// NewProjectilesRenderer creates the projectile layer
func NewProjectilesRenderer() *ProjectilesRenderer {
	return &ProjectilesRenderer{}
}

// IsVisible implements render.VisibilityToggle
func (r *ProjectilesRenderer) IsVisible(ctx *render.Context) bool {
	return len(ctx.Snapshot.Projectiles) > 0
}

// Render implements render.Renderer
func (r *ProjectilesRenderer) Render(ctx *render.Context, s render.Surface) {
	s.SetTransform(ctx.Session.Camera.Transform())
	for i := range ctx.Snapshot.Projectiles {
		s.FillPath(arrowPath(&ctx.Snapshot.Projectiles[i]), render.FromWorld(ctx.Snapshot.Projectiles[i].Color))
	}
}

// arrowPath builds shaft and head in local space, then rotates onto the projectile heading
func arrowPath(p *world.Projectile) *render.Path {
	angle := p.Direction.Angle()
	place := func(lx, ly float64) vmath.Vec2 {
		return vmath.V2(lx, ly).Rotate(angle).Add(p.Position)
	}

	hl, hw := arrowLength/2, arrowWidth/2
	return render.NewPath().
		Polygon(place(-hl, -hw), place(hl, -hw), place(hl, hw), place(-hl, hw)).
		Polygon(place(hl, 0), place(hl-arrowHead, -arrowHead), place(hl-arrowHead, arrowHead))
}
