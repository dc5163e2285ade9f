package renderers

import (
	"math"

	"github.com/lixenwraith/skirmish/render"
)

const (
	// GridStep is the world spacing of grid lines
	GridStep    = 100.0
	borderWidth = 2.0

	// maxGridLines caps lines per axis; past it the grid is skipped for the frame
	maxGridLines = 4096
)

// GridRenderer draws grid lines bounded by the map size and the map border
// Only the part of the map inside the view is walked
type GridRenderer struct{}

// NewGridRenderer creates the grid layer
func NewGridRenderer() *GridRenderer {
	return &GridRenderer{}
}

// Render implements render.Renderer
func (r *GridRenderer) Render(ctx *render.Context, s render.Surface) {
	size := ctx.Snapshot.MapSize
	if size.X <= 0 || size.Y <= 0 {
		return
	}
	cam := ctx.Session.Camera
	s.SetTransform(cam.Transform())

	lo := cam.ScreenToWorld(0, 0)
	hi := cam.ScreenToWorld(s.Size())
	x0, x1 := max(lo.X, 0), min(hi.X, size.X)
	y0, y1 := max(lo.Y, 0), min(hi.Y, size.Y)

	if x0 <= x1 && y0 <= y1 {
		for _, x := range gridStops(x0, x1) {
			s.StrokeLine(x, y0, x, y1, 1, render.ColorGrid)
		}
		for _, y := range gridStops(y0, y1) {
			s.StrokeLine(x0, y, x1, y, 1, render.ColorGrid)
		}
	}
	s.StrokeRect(0, 0, size.X, size.Y, borderWidth, render.ColorBorder)
}

// gridStops returns the multiples of GridStep in [lo, hi]
func gridStops(lo, hi float64) []float64 {
	first := math.Ceil(lo / GridStep)
	last := math.Floor(hi / GridStep)
	n := last - first
	if !(n >= 0 && n < maxGridLines) {
		return nil
	}
	stops := make([]float64, 0, int(n)+1)
	for i := 0; i <= int(n); i++ {
		stops = append(stops, (first+float64(i))*GridStep)
	}
	return stops
}
