package ebitensurface

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/lixenwraith/skirmish/camera"
	"github.com/lixenwraith/skirmish/render"
)

// debugFontAscent lifts DebugPrintAt's top-left origin onto a baseline
const debugFontAscent = 12

var (
	whiteImage    = ebiten.NewImage(3, 3)
	whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
)

func init() {
	whiteImage.Fill(color.White)
}

// Surface draws render.Surface calls onto the frame's *ebiten.Image
// Bind must be called at the top of every Draw
type Surface struct {
	dst       *ebiten.Image
	transform camera.Transform

	// Reused per path to avoid per-frame allocation
	vertices []ebiten.Vertex
	indices  []uint16
}

// New creates an unbound surface
func New() *Surface {
	return &Surface{transform: camera.Identity}
}

// Bind targets the next frame
func (s *Surface) Bind(dst *ebiten.Image) {
	s.dst = dst
	s.transform = camera.Identity
}

func nrgba(c render.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Size implements render.Surface
func (s *Surface) Size() (float64, float64) {
	b := s.dst.Bounds()
	return float64(b.Dx()), float64(b.Dy())
}

// Clear implements render.Surface
func (s *Surface) Clear(c render.Color) {
	s.dst.Fill(nrgba(c))
}

// SetTransform implements render.Surface
func (s *Surface) SetTransform(t camera.Transform) {
	s.transform = t
}

// FillRect implements render.Surface
func (s *Surface) FillRect(x, y, w, h float64, c render.Color) {
	sx, sy := s.transform.Apply(x, y)
	vector.DrawFilledRect(s.dst, float32(sx), float32(sy),
		float32(s.transform.Length(w)), float32(s.transform.Length(h)), nrgba(c), true)
}

// StrokeRect implements render.Surface
func (s *Surface) StrokeRect(x, y, w, h, width float64, c render.Color) {
	sx, sy := s.transform.Apply(x, y)
	vector.StrokeRect(s.dst, float32(sx), float32(sy),
		float32(s.transform.Length(w)), float32(s.transform.Length(h)),
		float32(s.transform.Length(width)), nrgba(c), true)
}

// StrokeLine implements render.Surface
func (s *Surface) StrokeLine(x1, y1, x2, y2, width float64, c render.Color) {
	ax, ay := s.transform.Apply(x1, y1)
	bx, by := s.transform.Apply(x2, y2)
	vector.StrokeLine(s.dst, float32(ax), float32(ay), float32(bx), float32(by),
		float32(s.transform.Length(width)), nrgba(c), true)
}

// FillPath implements render.Surface with the even-odd rule
func (s *Surface) FillPath(p *render.Path, c render.Color) {
	vp := s.vectorPath(p)
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForFilling(s.vertices[:0], s.indices[:0])
	s.draw(c, ebiten.FillRuleEvenOdd)
}

// StrokePath implements render.Surface
func (s *Surface) StrokePath(p *render.Path, width float64, c render.Color) {
	vp := s.vectorPath(p)
	s.vertices, s.indices = vp.AppendVerticesAndIndicesForStroke(s.vertices[:0], s.indices[:0], &vector.StrokeOptions{
		Width:    float32(s.transform.Length(width)),
		LineJoin: vector.LineJoinRound,
	})
	s.draw(c, ebiten.FillRuleFillAll)
}

// vectorPath replays the flattened subpaths in screen space
func (s *Surface) vectorPath(p *render.Path) *vector.Path {
	var vp vector.Path
	for _, sub := range p.Transformed(s.transform).Subpaths() {
		for i, pt := range sub.Points {
			if i == 0 {
				vp.MoveTo(float32(pt.X), float32(pt.Y))
				continue
			}
			vp.LineTo(float32(pt.X), float32(pt.Y))
		}
		if sub.Closed {
			vp.Close()
		}
	}
	return &vp
}

func (s *Surface) draw(c render.Color, rule ebiten.FillRule) {
	r, g, b, a := float32(c.R)/255, float32(c.G)/255, float32(c.B)/255, float32(c.A)/255
	for i := range s.vertices {
		v := &s.vertices[i]
		v.SrcX, v.SrcY = 1, 1
		v.ColorR, v.ColorG, v.ColorB, v.ColorA = r, g, b, a
	}
	s.dst.DrawTriangles(s.vertices, s.indices, whiteSubImage, &ebiten.DrawTrianglesOptions{
		FillRule:  rule,
		AntiAlias: true,
	})
}

// DrawText implements render.Surface; the debug font is fixed white
func (s *Surface) DrawText(x, y float64, text string, _ render.Color) {
	ebitenutil.DebugPrintAt(s.dst, text, int(x), int(y)-debugFontAscent)
}
