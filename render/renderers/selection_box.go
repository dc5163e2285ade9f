package renderers

import (
	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/vmath"
)

// SelectionBoxRenderer draws the in-progress box-select rectangle in screen space
type SelectionBoxRenderer struct{}

// NewSelectionBoxRenderer creates the box overlay layer
func NewSelectionBoxRenderer() *SelectionBoxRenderer {
	return &SelectionBoxRenderer{}
}

// IsVisible implements render.VisibilityToggle
func (r *SelectionBoxRenderer) IsVisible(ctx *render.Context) bool {
	return ctx.Box.Active
}

// Render implements render.Renderer
func (r *SelectionBoxRenderer) Render(ctx *render.Context, s render.Surface) {
	lo := vmath.Min(ctx.Box.Start, ctx.Box.End)
	size := vmath.Max(ctx.Box.Start, ctx.Box.End).Sub(lo)

	s.FillRect(lo.X, lo.Y, size.X, size.Y, render.ColorBoxFill)
	s.StrokeRect(lo.X, lo.Y, size.X, size.Y, 1, render.ColorBoxStroke)
}
