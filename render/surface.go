package render

import (
	"math"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/vmath"
)

// Surface is the drawing capability a host provides
// Coordinates are interpreted through the current transform; line widths scale with it
type Surface interface {
	// Size returns the drawable area in screen pixels
	Size() (w, h float64)

	// Clear fills the whole surface ignoring the transform
	Clear(c Color)

	// SetTransform replaces the current transform; camera.Identity draws in screen space
	SetTransform(t camera.Transform)

	FillRect(x, y, w, h float64, c Color)
	StrokeRect(x, y, w, h, width float64, c Color)
	StrokeLine(x1, y1, x2, y2, width float64, c Color)
	FillPath(p *Path, c Color)
	StrokePath(p *Path, width float64, c Color)

	// DrawText draws one line with its baseline at y, always in screen space
	DrawText(x, y float64, text string, c Color)
}

// arcSegments is the flattening resolution of a full circle
const arcSegments = 32

// Subpath is a flattened polyline
type Subpath struct {
	Points []vmath.Vec2
	Closed bool
}

// Path accumulates flattened subpaths; curves are converted to line segments on insertion
type Path struct {
	subpaths []Subpath
}

// NewPath creates an empty path
func NewPath() *Path {
	return &Path{}
}

// MoveTo starts a new subpath
func (p *Path) MoveTo(x, y float64) *Path {
	p.subpaths = append(p.subpaths, Subpath{Points: []vmath.Vec2{vmath.V2(x, y)}})
	return p
}

// LineTo extends the current subpath, starting one if needed
func (p *Path) LineTo(x, y float64) *Path {
	if len(p.subpaths) == 0 {
		return p.MoveTo(x, y)
	}
	cur := &p.subpaths[len(p.subpaths)-1]
	cur.Points = append(cur.Points, vmath.V2(x, y))
	return p
}

// Arc appends a circular arc from angle start to end (radians, clockwise in screen space)
// The arc starts a new subpath
func (p *Path) Arc(cx, cy, r, start, end float64) *Path {
	sweep := end - start
	n := int(math.Ceil(math.Abs(sweep) / (2 * math.Pi) * arcSegments))
	if n < 1 {
		n = 1
	}
	p.MoveTo(cx+r*math.Cos(start), cy+r*math.Sin(start))
	for i := 1; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		p.LineTo(cx+r*math.Cos(a), cy+r*math.Sin(a))
	}
	return p
}

// Circle appends a closed full circle
func (p *Path) Circle(cx, cy, r float64) *Path {
	p.Arc(cx, cy, r, 0, 2*math.Pi)
	return p.Close()
}

// Polygon appends a closed polygon through pts
func (p *Path) Polygon(pts ...vmath.Vec2) *Path {
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
		} else {
			p.LineTo(pt.X, pt.Y)
		}
	}
	return p.Close()
}

// Close marks the current subpath closed
func (p *Path) Close() *Path {
	if len(p.subpaths) > 0 {
		p.subpaths[len(p.subpaths)-1].Closed = true
	}
	return p
}

// Subpaths returns the flattened subpaths
func (p *Path) Subpaths() []Subpath {
	return p.subpaths
}

// Empty reports a path with no points
func (p *Path) Empty() bool {
	return p == nil || len(p.subpaths) == 0
}

// Transformed returns a copy with every point mapped through t
func (p *Path) Transformed(t camera.Transform) *Path {
	out := &Path{subpaths: make([]Subpath, len(p.subpaths))}
	for i, sp := range p.subpaths {
		pts := make([]vmath.Vec2, len(sp.Points))
		for j, pt := range sp.Points {
			pts[j] = t.ApplyVec(pt)
		}
		out.subpaths[i] = Subpath{Points: pts, Closed: sp.Closed}
	}
	return out
}

// Bounds returns the axis-aligned bounding box
func (p *Path) Bounds() (min, max vmath.Vec2) {
	first := true
	for _, sp := range p.subpaths {
		for _, pt := range sp.Points {
			if first {
				min, max = pt, pt
				first = false
				continue
			}
			min = vmath.Min(min, pt)
			max = vmath.Max(max, pt)
		}
	}
	return min, max
}

// Contains tests pt against the filled area using the even-odd rule
// Every subpath is treated as closed for filling
func (p *Path) Contains(pt vmath.Vec2) bool {
	inside := false
	for _, sp := range p.subpaths {
		n := len(sp.Points)
		if n < 3 {
			continue
		}
		for i, j := 0, n-1; i < n; j, i = i, i+1 {
			a, b := sp.Points[i], sp.Points[j]
			if (a.Y > pt.Y) != (b.Y > pt.Y) &&
				pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
				inside = !inside
			}
		}
	}
	return inside
}
