package renderers

import (
	"github.com/lixenwraith/skirmish/render"
)

const (
	// HighlightRadius is the selection ring radius in world units
	HighlightRadius = TroopSize * 0.8
	highlightWidth  = 2.0
)

// HighlightRenderer rings every selected troop present in the current snapshot
// Ids missing from the snapshot are skipped; the selection itself is not pruned
type HighlightRenderer struct{}

// NewHighlightRenderer creates the selection highlight layer
func NewHighlightRenderer() *HighlightRenderer {
	return &HighlightRenderer{}
}

// IsVisible implements render.VisibilityToggle
func (r *HighlightRenderer) IsVisible(ctx *render.Context) bool {
	return !ctx.Session.Selection.Empty()
}

// Render implements render.Renderer
func (r *HighlightRenderer) Render(ctx *render.Context, s render.Surface) {
	s.SetTransform(ctx.Session.Camera.Transform())
	for _, id := range ctx.Session.Selection.IDs() {
		t, ok := ctx.Snapshot.Troop(id)
		if !ok {
			continue
		}
		ring := render.NewPath().Circle(t.Position.X, t.Position.Y, HighlightRadius)
		s.StrokePath(ring, highlightWidth, render.ColorHighlight)
	}
}
