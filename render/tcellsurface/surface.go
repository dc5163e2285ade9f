package tcellsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/render"
	"github.com/lixenwraith/skirmish/vmath"
)

// Default pixel footprint of one terminal cell
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Surface rasterises render.Surface calls onto a cell grid
// Pixel coordinates map to cells by cellW x cellH; fills cover cells whose centers fall inside
type Surface struct {
	buf          *Buffer
	cellW, cellH float64
	mode         ColorMode
	transform    camera.Transform
}

// New creates a surface of cols x rows cells; non-positive cell sizes use the defaults
func New(cols, rows int, cellW, cellH float64, mode ColorMode) *Surface {
	if cellW <= 0 {
		cellW = DefaultCellWidth
	}
	if cellH <= 0 {
		cellH = DefaultCellHeight
	}
	return &Surface{
		buf:       NewBuffer(cols, rows),
		cellW:     cellW,
		cellH:     cellH,
		mode:      mode,
		transform: camera.Identity,
	}
}

// Buffer exposes the composited cells
func (s *Surface) Buffer() *Buffer {
	return s.buf
}

// Resize changes the grid size in cells and clears it
func (s *Surface) Resize(cols, rows int) {
	s.buf.Resize(cols, rows)
}

// CellSize returns the pixel footprint of one cell
func (s *Surface) CellSize() (w, h float64) {
	return s.cellW, s.cellH
}

// Size implements render.Surface
func (s *Surface) Size() (float64, float64) {
	w, h := s.buf.Size()
	return float64(w) * s.cellW, float64(h) * s.cellH
}

// Clear implements render.Surface
func (s *Surface) Clear(c render.Color) {
	s.buf.Fill(c)
}

// SetTransform implements render.Surface
func (s *Surface) SetTransform(t camera.Transform) {
	s.transform = t
}

// FillRect implements render.Surface
func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	x0, y0 := s.transform.Apply(x, y)
	x1, y1 := s.transform.Apply(x+w, y+h)
	c0, c1 := s.span(math.Min(x0, x1), math.Max(x0, x1), s.cellW)
	r0, r1 := s.span(math.Min(y0, y1), math.Max(y0, y1), s.cellH)

	bw, bh := s.buf.Size()
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, bw-1), min(r1, bh-1)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			s.buf.Paint(col, row, c)
		}
	}
}

// span returns the cells whose centers lie in [lo, hi); a span thinner than one cell
// collapses onto the cell containing its midpoint
func (s *Surface) span(lo, hi, size float64) (int, int) {
	first := int(math.Ceil(lo/size - 0.5))
	last := int(math.Ceil(hi/size-0.5)) - 1
	if first > last {
		mid := int(math.Floor((lo + hi) / 2 / size))
		return mid, mid
	}
	return first, last
}

// StrokeRect implements render.Surface
func (s *Surface) StrokeRect(x, y, w, h, width float64, c render.Color) {
	s.StrokeLine(x, y, x+w, y, width, c)
	s.StrokeLine(x+w, y, x+w, y+h, width, c)
	s.StrokeLine(x+w, y+h, x, y+h, width, c)
	s.StrokeLine(x, y+h, x, y, width, c)
}

// StrokeLine implements render.Surface; width is below cell resolution and ignored
func (s *Surface) StrokeLine(x1, y1, x2, y2, _ float64, c render.Color) {
	ax, ay := s.transform.Apply(x1, y1)
	bx, by := s.transform.Apply(x2, y2)
	s.line(ax, ay, bx, by, c)
}

// line clips the segment to the grid in pixel space, then steps one cell at a time
func (s *Surface) line(ax, ay, bx, by float64, c render.Color) {
	glyph := lineGlyph(bx-ax, by-ay)
	w, h := s.Size()
	ax, ay, bx, by, ok := clipSegment(ax, ay, bx, by, w, h)
	if !ok {
		return
	}
	c0, r0 := s.cellAt(ax, ay)
	c1, r1 := s.cellAt(bx, by)

	steps := max(abs(c1-c0), abs(r1-r0))
	if steps == 0 {
		s.buf.SetGlyph(c0, r0, glyph, c)
		return
	}
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		col := int(math.Round(float64(c0) + t*float64(c1-c0)))
		row := int(math.Round(float64(r0) + t*float64(r1-r0)))
		s.buf.SetGlyph(col, row, glyph, c)
	}
}

// clipSegment trims a segment to [0,w] x [0,h] (Liang-Barsky)
// ok is false when nothing of the segment is inside
func clipSegment(ax, ay, bx, by, w, h float64) (float64, float64, float64, float64, bool) {
	for _, v := range [4]float64{ax, ay, bx, by} {
		if math.IsNaN(v) {
			return 0, 0, 0, 0, false
		}
	}
	dx, dy := bx-ax, by-ay
	t0, t1 := 0.0, 1.0
	for _, e := range [4][2]float64{{-dx, ax}, {dx, w - ax}, {-dy, ay}, {dy, h - ay}} {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		r := q / p
		if p < 0 {
			if r > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, r)
		} else {
			if r < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, r)
		}
	}
	if math.IsNaN(t0) || math.IsNaN(t1) {
		return 0, 0, 0, 0, false
	}
	return ax + t0*dx, ay + t0*dy, ax + t1*dx, ay + t1*dy, true
}

func (s *Surface) cellAt(px, py float64) (int, int) {
	return int(math.Floor(px / s.cellW)), int(math.Floor(py / s.cellH))
}

// lineGlyph picks a box-drawing rune by pixel slope; screen y grows downward
func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case adx == 0 && ady == 0:
		return '·'
	case ady <= adx*0.5:
		return '─'
	case adx <= ady*0.5:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

// FillPath implements render.Surface using even-odd containment of cell centers
func (s *Surface) FillPath(p *render.Path, c render.Color) {
	if p.Empty() {
		return
	}
	sp := p.Transformed(s.transform)
	lo, hi := sp.Bounds()

	w, h := s.buf.Size()
	c0, r0 := s.cellAt(lo.X, lo.Y)
	c1, r1 := s.cellAt(hi.X, hi.Y)
	c0, r0 = max(c0, 0), max(r0, 0)
	c1, r1 = min(c1, w-1), min(r1, h-1)

	painted := false
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			center := vmath.V2((float64(col)+0.5)*s.cellW, (float64(row)+0.5)*s.cellH)
			if sp.Contains(center) {
				s.buf.Paint(col, row, c)
				painted = true
			}
		}
	}
	if !painted {
		mid := lo.Add(hi).Scale(0.5)
		col, row := s.cellAt(mid.X, mid.Y)
		s.buf.Paint(col, row, c)
	}
}

// StrokePath implements render.Surface
func (s *Surface) StrokePath(p *render.Path, _ float64, c render.Color) {
	for _, sub := range p.Transformed(s.transform).Subpaths() {
		pts := sub.Points
		for i := 1; i < len(pts); i++ {
			s.line(pts[i-1].X, pts[i-1].Y, pts[i].X, pts[i].Y, c)
		}
		if sub.Closed && len(pts) > 2 {
			last := pts[len(pts)-1]
			s.line(last.X, last.Y, pts[0].X, pts[0].Y, c)
		}
	}
}

// DrawText implements render.Surface; the baseline row is floor(y / cellH)
func (s *Surface) DrawText(x, y float64, text string, c render.Color) {
	col, row := s.cellAt(x, y)
	for _, r := range text {
		s.buf.SetGlyph(col, row, r, c)
		col++
	}
}

// Flush copies the buffer to screen and shows it
func (s *Surface) Flush(screen tcell.Screen) {
	w, h := s.buf.Size()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cell := s.buf.cells[y*w+x]
			style := tcell.StyleDefault.
				Foreground(tcellColor(cell.Fg, s.mode)).
				Background(tcellColor(cell.Bg, s.mode))
			screen.SetContent(x, y, cell.Rune, nil, style)
		}
	}
	screen.Show()
}
